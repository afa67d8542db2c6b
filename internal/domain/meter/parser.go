package meter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmpty     = errors.New("meter: empty line")
	ErrMalformed = errors.New("meter: malformed line")
)

// Format — какая кодировка строки принимается от контроллера.
type Format string

const (
	FormatAuto      Format = "auto"      // оба варианта
	FormatSemicolon Format = "semicolon" // light;gas;water;cardId
	FormatKeyValue  Format = "keyvalue"  // light:n,gas:n,water:n и PAYMENT
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatSemicolon, FormatKeyValue:
		return f, nil
	}
	return "", fmt.Errorf("meter: unknown line format %q", s)
}

// ParseError — строка отброшена. Kind совпадает с ErrEmpty или ErrMalformed.
type ParseError struct {
	Kind   error
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Kind == ErrEmpty {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v: %s: %q", e.Kind, e.Reason, e.Line)
}

func (e *ParseError) Is(target error) bool { return target == e.Kind }

func malformed(line, reason string) error {
	return &ParseError{Kind: ErrMalformed, Line: line, Reason: reason}
}

type Parser struct {
	format Format
}

func NewParser(f Format) Parser {
	if f == "" {
		f = FormatAuto
	}
	return Parser{format: f}
}

// Parse принимает формат auto.
func Parse(line string) (Reading, error) {
	return NewParser(FormatAuto).Parse(line)
}

// Parse разбирает одну строку без терминатора. Побочных эффектов нет.
func (p Parser) Parse(line string) (Reading, error) {
	s := strings.TrimSpace(line)
	if s == "" {
		return Reading{}, &ParseError{Kind: ErrEmpty, Line: line}
	}

	switch p.format {
	case FormatSemicolon:
		return parseSemicolon(s)
	case FormatKeyValue:
		if s == PaymentLine {
			return Reading{Kind: KindPayment, CardID: PaymentLine}, nil
		}
		return parseKeyValue(s)
	}

	switch {
	case s == PaymentLine:
		return Reading{Kind: KindPayment, CardID: PaymentLine}, nil
	case strings.Contains(s, ";"):
		return parseSemicolon(s)
	case strings.Contains(s, ":"):
		return parseKeyValue(s)
	}
	return Reading{}, malformed(s, "unknown encoding")
}

func parseSemicolon(s string) (Reading, error) {
	parts := strings.Split(s, ";")
	if len(parts) < 4 {
		return Reading{}, malformed(s, fmt.Sprintf("want 4 fields, got %d", len(parts)))
	}

	var vals [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return Reading{}, malformed(s, fmt.Sprintf("field %d is not an integer", i+1))
		}
		vals[i] = v
	}

	// поле карты берём как есть: отсутствие метки — только точное NONE
	return Reading{Light: vals[0], Gas: vals[1], Water: vals[2], CardID: parts[3]}, nil
}

func parseKeyValue(s string) (Reading, error) {
	seen := map[Resource]int{}
	for _, pair := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			return Reading{}, malformed(s, fmt.Sprintf("pair %q has no ':'", strings.TrimSpace(pair)))
		}
		res := Resource(strings.ToLower(strings.TrimSpace(k)))
		switch res {
		case Light, Gas, Water:
		default:
			return Reading{}, malformed(s, fmt.Sprintf("unknown key %q", strings.TrimSpace(k)))
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return Reading{}, malformed(s, fmt.Sprintf("%s is not an integer", res))
		}
		seen[res] = n
	}

	for _, res := range Resources {
		if _, ok := seen[res]; !ok {
			return Reading{}, malformed(s, fmt.Sprintf("missing %s", res))
		}
	}
	return Reading{Light: seen[Light], Gas: seen[Gas], Water: seen[Water], CardID: NoCard}, nil
}
