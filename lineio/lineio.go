// Package lineio parses the line-file format from spec §6: one record per
// line, an integer id followed by four floats for the two endpoints and
// two floats for velocity. Blank lines and "#"-prefixed comments are
// tolerated, a convention borrowed from kortschak/ins's flag/file-driven
// CLI (d126955e_kortschak-ins__cmd-ins-main.go.go), which routinely
// tolerates comment and blank lines in its text inputs.
package lineio

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/segcollide/sim/geom"
	"github.com/segcollide/sim/vec"
)

// ErrMalformedRecord is wrapped with the offending line number and text.
var ErrMalformedRecord = errors.New("lineio: malformed record")

// ReadLines parses every non-blank, non-comment record from r into a Line.
func ReadLines(r io.Reader) ([]*geom.Line, error) {
	var lines []*geom.Line
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		l, err := parseRecord(text)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedRecord, "line %d: %s: %v", lineNo, text, err)
		}
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "lineio: reading input")
	}
	return lines, nil
}

// parseRecord parses "id x1 y1 x2 y2 vx vy" into a Line.
func parseRecord(text string) (*geom.Line, error) {
	fields := strings.Fields(text)
	if len(fields) != 7 {
		return nil, errors.Errorf("expected 7 fields, got %d", len(fields))
	}

	id, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, errors.Wrap(err, "parsing id")
	}

	vals := make([]float64, 6)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing field %d", i+1)
		}
		vals[i] = v
	}

	p1 := vec.New(vals[0], vals[1])
	p2 := vec.New(vals[2], vals[3])
	velocity := vec.New(vals[4], vals[5])
	return geom.NewLine(uint32(id), p1, p2, velocity), nil
}
