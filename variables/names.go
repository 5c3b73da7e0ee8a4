package variables

import "strings"

// Sigil starts a variable reference.
const Sigil = '$'

// IsValidName checks the naming rule for variables: a non-empty run of
// ASCII letters, decimal digits and '$'. Positions do not matter, thus
// "$$$" and "5$x" are valid names.
//
// The rule applies to assignment targets as well as to complete
// references, sigil included.
func IsValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == Sigil:
		default:
			return false
		}
	}
	return true
}

// IsReference is a predicate: does token denote a variable reference?
func IsReference(token string) bool {
	return len(token) > 0 && token[0] == Sigil
}

// Referenced returns the name of the variable a reference denotes, i.e.
// the reference without its leading sigil.
func Referenced(ref string) string {
	return strings.TrimPrefix(ref, string(Sigil))
}

// Resolve looks up the variable denoted by reference ref.
func Resolve(vars Lookup, ref string) (int64, bool) {
	name := Referenced(ref)
	v, ok := vars.Get(name)
	if !ok {
		tracer().P("var", name).Debugf("reference %s has no value", ref)
	}
	return v, ok
}
