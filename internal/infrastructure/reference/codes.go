// Package reference serves static lookup tables: HSN/SAC classification codes and Indian states
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Code is one HSN (goods) or SAC (services) entry
type Code struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Codes is an in-memory HSN/SAC table loaded once at startup
type Codes struct {
	list  []Code
	index map[string]string
}

// LoadCodes reads every CSV path in order and merges them. Each file has a header
// row; the first column is the code and the second its description. A missing
// path is an error so a misconfigured deployment fails at boot.
func LoadCodes(paths ...string) (*Codes, error) {
	c := &Codes{index: make(map[string]string)}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open code table %s: %w", path, err)
		}
		err = c.read(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read code table %s: %w", path, err)
		}
	}
	return c, nil
}

// ParseCodes builds a table from a single CSV stream
func ParseCodes(r io.Reader) (*Codes, error) {
	c := &Codes{index: make(map[string]string)}
	if err := c.read(r); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Codes) read(r io.Reader) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if header {
			header = false
			continue
		}
		if len(record) < 2 {
			continue
		}
		code := strings.TrimSpace(record[0])
		if code == "" {
			continue
		}
		desc := strings.TrimSpace(record[1])
		if _, seen := c.index[code]; seen {
			continue
		}
		c.index[code] = desc
		c.list = append(c.list, Code{Code: code, Description: desc})
	}
}

// Lookup returns the description for code
func (c *Codes) Lookup(code string) (string, bool) {
	if c == nil {
		return "", false
	}
	desc, ok := c.index[strings.TrimSpace(code)]
	return desc, ok
}

// Search returns entries whose code starts with q or whose description contains q,
// ordered by code. An empty q returns everything.
func (c *Codes) Search(q string, limit int) []Code {
	out := []Code{}
	if c == nil {
		return out
	}
	q = strings.ToLower(strings.TrimSpace(q))
	for _, code := range c.list {
		if q == "" || strings.HasPrefix(strings.ToLower(code.Code), q) || strings.Contains(strings.ToLower(code.Description), q) {
			out = append(out, code)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Len is the number of distinct codes loaded
func (c *Codes) Len() int {
	if c == nil {
		return 0
	}
	return len(c.list)
}
