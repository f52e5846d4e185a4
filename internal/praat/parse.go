package praat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a long-format TextGrid from r. The reader must yield UTF-8
// text; compose with textenc.NewReader for other encodings.
func Parse(r io.Reader) (*Document, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	p := &parser{sc: sc}

	doc, err := p.parse()
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	sc   *bufio.Scanner
	line int
}

func (p *parser) parse() (*Document, error) {
	fileType, err := p.stringField("File type")
	if err != nil {
		return nil, err
	}
	if fileType != "ooTextFile" {
		return nil, fmt.Errorf("line %d: unsupported file type %q", p.line, fileType)
	}
	class, err := p.stringField("Object class")
	if err != nil {
		return nil, err
	}
	if class != "TextGrid" {
		return nil, fmt.Errorf("line %d: unsupported object class %q", p.line, class)
	}

	doc := &Document{}
	if doc.XMin, err = p.numberField("xmin"); err != nil {
		return nil, err
	}
	if doc.XMax, err = p.numberField("xmax"); err != nil {
		return nil, err
	}

	tiersLine, err := p.nextContentLine()
	if err != nil {
		return nil, fmt.Errorf("line %d: missing tiers marker", p.line)
	}
	if strings.Contains(tiersLine, "<absent>") {
		return doc, nil
	}
	if !strings.Contains(tiersLine, "tiers?") {
		return nil, fmt.Errorf("line %d: expected tiers marker, got %q", p.line, tiersLine)
	}

	sizeRaw, err := p.field("size")
	if err != nil {
		return nil, err
	}
	size, err := strconv.Atoi(strings.TrimSpace(sizeRaw))
	if err != nil {
		return nil, fmt.Errorf("line %d: tier count: %w", p.line, err)
	}

	for i := 0; i < size; i++ {
		tier, err := p.parseTier()
		if err != nil {
			return nil, err
		}
		tier.Index = len(doc.Tiers)
		doc.Tiers = append(doc.Tiers, tier)
	}
	return doc, nil
}

func (p *parser) parseTier() (Tier, error) {
	// Praat emits a bare "item []:" marker before the first tier.
	for {
		line, err := p.nextContentLine()
		if err != nil {
			return Tier{}, fmt.Errorf("line %d: missing tier item", p.line)
		}
		if !strings.HasPrefix(line, "item [") {
			return Tier{}, fmt.Errorf("line %d: expected tier item, got %q", p.line, line)
		}
		if !strings.HasPrefix(line, "item []") {
			break
		}
	}

	var tier Tier
	class, err := p.stringField("class")
	if err != nil {
		return Tier{}, err
	}
	if tier.Name, err = p.stringField("name"); err != nil {
		return Tier{}, err
	}
	if tier.XMin, err = p.numberField("xmin"); err != nil {
		return Tier{}, err
	}
	if tier.XMax, err = p.numberField("xmax"); err != nil {
		return Tier{}, err
	}

	switch class {
	case "IntervalTier":
		return tier, p.parseIntervals(&tier)
	case "TextTier":
		tier.IsPoint = true
		return tier, p.parsePoints(&tier)
	default:
		return Tier{}, fmt.Errorf("line %d: unsupported tier class %q", p.line, class)
	}
}

func (p *parser) parseIntervals(tier *Tier) error {
	count, err := p.countField("intervals: size")
	if err != nil {
		return err
	}
	tier.Intervals = make([]Interval, 0, count)
	for i := 0; i < count; i++ {
		if err := p.marker("intervals ["); err != nil {
			return err
		}
		var iv Interval
		if iv.XMin, err = p.numberField("xmin"); err != nil {
			return err
		}
		if iv.XMax, err = p.numberField("xmax"); err != nil {
			return err
		}
		if iv.Text, err = p.stringField("text"); err != nil {
			return err
		}
		tier.Intervals = append(tier.Intervals, iv)
	}
	return nil
}

func (p *parser) parsePoints(tier *Tier) error {
	count, err := p.countField("points: size")
	if err != nil {
		return err
	}
	tier.Points = make([]Point, 0, count)
	for i := 0; i < count; i++ {
		if err := p.marker("points ["); err != nil {
			return err
		}
		var pt Point
		if pt.Number, err = p.numberField("number"); err != nil {
			return err
		}
		if pt.Mark, err = p.stringField("mark"); err != nil {
			return err
		}
		tier.Points = append(tier.Points, pt)
	}
	return nil
}

func (p *parser) next() (string, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	p.line++
	return strings.TrimSuffix(p.sc.Text(), "\r"), nil
}

func (p *parser) nextContentLine() (string, error) {
	for {
		line, err := p.next()
		if err != nil {
			return "", err
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			return trimmed, nil
		}
	}
}

func (p *parser) marker(prefix string) error {
	line, err := p.nextContentLine()
	if err != nil {
		return fmt.Errorf("line %d: missing %q entry", p.line, prefix)
	}
	if !strings.HasPrefix(line, prefix) {
		return fmt.Errorf("line %d: expected %q entry, got %q", p.line, prefix, line)
	}
	return nil
}

// field returns the raw value of the next "key = value" line.
func (p *parser) field(key string) (string, error) {
	line, err := p.nextContentLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("line %d: unexpected end of file, wanted %q", p.line, key)
		}
		return "", err
	}
	idx := strings.Index(line, "=")
	if idx < 0 {
		return "", fmt.Errorf("line %d: expected %q field, got %q", p.line, key, line)
	}
	got := strings.TrimSpace(line[:idx])
	if got != key {
		return "", fmt.Errorf("line %d: expected %q field, got %q", p.line, key, got)
	}
	return strings.TrimSpace(line[idx+1:]), nil
}

func (p *parser) numberField(key string) (float64, error) {
	raw, err := p.field(key)
	if err != nil {
		return 0, err
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", p.line, key, err)
	}
	return value, nil
}

func (p *parser) countField(key string) (int, error) {
	raw, err := p.field(key)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", p.line, key, err)
	}
	return count, nil
}

// stringField reads a quoted value, consuming continuation lines when the
// text itself contains newlines. Praat escapes a literal quote as "".
func (p *parser) stringField(key string) (string, error) {
	raw, err := p.field(key)
	if err != nil {
		return "", err
	}
	if !strings.HasPrefix(raw, `"`) {
		return "", fmt.Errorf("line %d: %s: expected quoted string, got %q", p.line, key, raw)
	}
	for strings.Count(raw, `"`)%2 != 0 {
		line, err := p.next()
		if err != nil {
			return "", fmt.Errorf("line %d: %s: unterminated string", p.line, key)
		}
		raw += "\n" + line
	}
	raw = strings.TrimRight(raw, " \t")
	if len(raw) < 2 || !strings.HasSuffix(raw, `"`) {
		return "", fmt.Errorf("line %d: %s: malformed string", p.line, key)
	}
	return strings.ReplaceAll(raw[1:len(raw)-1], `""`, `"`), nil
}
