package protocol

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iamasit07/connect4-tcp/internal/domain"
)

// MaxMessage is the most a single raw read will consume, as the original peers did.
const MaxMessage = 255

// Framing selects how moves are delimited on a stream.
type Framing string

const (
	// FramingRaw writes the bare decimal text and treats whatever one read
	// call returns as one move. Compatible with the original C peers.
	FramingRaw Framing = "raw"
	// FramingLine terminates every move with '\n'.
	FramingLine Framing = "line"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrMalformedMove  Error = "malformed move"
	ErrUnknownFraming Error = "unknown framing"
)

func ParseFraming(s string) (Framing, error) {
	switch Framing(strings.ToLower(strings.TrimSpace(s))) {
	case FramingRaw, "":
		return FramingRaw, nil
	case FramingLine:
		return FramingLine, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFraming, s)
}

// EncodeMove returns the ASCII decimal text of a 1-based column.
func EncodeMove(col int) []byte {
	return []byte(strconv.Itoa(col))
}

// ParseMove decodes a column number the way strtol does: leading whitespace
// and an optional sign, then digits; anything after the digits is ignored.
// The column must be in 1..domain.Columns.
func ParseMove(buf []byte) (int, error) {
	i := 0
	for i < len(buf) && isSpace(buf[i]) {
		i++
	}

	start := i
	if i < len(buf) && (buf[i] == '+' || buf[i] == '-') {
		i++
	}
	digits := i
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}
	if i == digits {
		return 0, fmt.Errorf("%w: %q", ErrMalformedMove, buf)
	}

	col, err := strconv.Atoi(string(buf[start:i]))
	if err != nil {
		// only overflow gets here; such a number is never a column
		return 0, fmt.Errorf("column %s: %w", buf[start:i], domain.ErrInvalidMove)
	}
	if err := domain.ValidateColumn(col); err != nil {
		return 0, fmt.Errorf("column %d: %w", col, err)
	}
	return col, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Codec reads and writes moves on one stream.
type Codec struct {
	r       io.Reader
	br      *bufio.Reader
	w       io.Writer
	framing Framing
}

func NewCodec(rw io.ReadWriter, framing Framing) *Codec {
	c := &Codec{r: rw, w: rw, framing: framing}
	if framing == FramingLine {
		c.br = bufio.NewReader(rw)
	}
	return c
}

// ReadMessage returns the bytes of the next message without interpreting them.
func (c *Codec) ReadMessage() ([]byte, error) {
	if c.framing == FramingLine {
		line, err := c.br.ReadBytes('\n')
		if len(line) > 0 && (err == nil || errors.Is(err, io.EOF)) {
			return line, nil
		}
		return nil, err
	}

	buf := make([]byte, MaxMessage)
	for {
		n, err := c.r.Read(buf)
		if n > 0 {
			return buf[:n], nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// ReadMove reads the next message and decodes it with ParseMove.
func (c *Codec) ReadMove() (int, error) {
	msg, err := c.ReadMessage()
	if err != nil {
		return 0, err
	}
	return ParseMove(msg)
}

func (c *Codec) WriteMove(col int) error {
	msg := EncodeMove(col)
	if c.framing == FramingLine {
		msg = append(msg, '\n')
	}
	_, err := c.w.Write(msg)
	return err
}
