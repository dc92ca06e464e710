// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Menu is an ordered list of sheets. On the wire it is a JSON object keyed by
// sheet name, and the key order of that object is kept.
type Menu []Sheet

// Sheet returns the sheet with the given name
func (m Menu) Sheet(name string) (Sheet, bool) {
	for _, s := range m {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// SheetNames returns sheet names in menu order
func (m Menu) SheetNames() []string {
	names := make([]string, 0, len(m))
	for _, s := range m {
		names = append(names, s.Name)
	}
	return names
}

func (m Menu) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(s.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		cats := s.Categories
		if cats == nil {
			cats = []Category{}
		}
		val, err := json.Marshal(cats)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *Menu) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("menu must be a JSON object, got %v", tok)
	}

	menu := Menu{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("invalid sheet name %v", tok)
		}

		var cats []Category
		if err := dec.Decode(&cats); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}

		// A repeated key replaces the earlier sheet, as a plain object decode would
		replaced := false
		for i := range menu {
			if menu[i].Name == name {
				menu[i].Categories = cats
				replaced = true
				break
			}
		}
		if !replaced {
			menu = append(menu, Sheet{Name: name, Categories: cats})
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = menu
	return nil
}
