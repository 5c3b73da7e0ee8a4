package grammar

import (
	"bytes"
	"io"
	"unicode/utf8"
)

// runeStream reads runes with one rune of lookahead. Matched runes are
// collected as the current lexeme, skipped runes are consumed silently.
//
// Bytes which are not valid UTF-8 are looked ahead as utf8.RuneError, but
// matched as the original byte, if the reader is able to unread.
type runeStream struct {
	isEof  bool
	next   rune
	hasLA  bool
	raw    int // invalid byte behind lookahead RuneError, or -1
	pos    int // count of runes consumed
	reader io.RuneReader
	writer bytes.Buffer
}

func newRuneStream(reader io.RuneReader) *runeStream {
	return &runeStream{reader: reader}
}

func (rs *runeStream) Lexeme() string {
	return rs.writer.String()
}

func (rs *runeStream) ResetLexeme() {
	rs.writer.Reset()
}

func (rs *runeStream) lookahead() (r rune, err error) {
	if rs.isEof {
		return utf8.RuneError, io.EOF
	}
	if rs.hasLA {
		return rs.next, nil
	}
	var size int
	r, size, err = rs.reader.ReadRune()
	if err == io.EOF {
		tracer().Debugf("EOF for print expression")
		rs.isEof = true
		return utf8.RuneError, io.EOF
	} else if err != nil {
		return 0, err
	}
	rs.next, rs.hasLA, rs.raw = r, true, -1
	if r == utf8.RuneError && size == 1 {
		rs.raw = rs.invalidByte()
	}
	return
}

// invalidByte re-reads the byte just read as utf8.RuneError.
func (rs *runeStream) invalidByte() int {
	type byteScanner interface {
		io.RuneScanner
		io.ByteReader
	}
	bs, ok := rs.reader.(byteScanner)
	if !ok || bs.UnreadRune() != nil {
		return -1
	}
	b, err := bs.ReadByte()
	if err != nil {
		return -1
	}
	return int(b)
}

// match consumes the lookahead rune and appends it to the lexeme.
func (rs *runeStream) match(r rune) {
	if rs.isEof {
		panic("EOF matched")
	}
	if rs.hasLA && rs.raw >= 0 {
		rs.writer.WriteByte(byte(rs.raw))
	} else {
		rs.writer.WriteRune(r)
	}
	rs.skip()
}

// skip consumes the lookahead rune without recording it.
func (rs *runeStream) skip() {
	if rs.hasLA {
		rs.hasLA = false
		rs.pos++
	}
}
