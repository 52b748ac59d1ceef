// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The dataset-management Authors

package coco

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// fields is a decoded JSON object. Known keys are taken out as they are
// decoded and whatever is left over becomes a record's Extra.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}

func (f fields) take(key string, v any) error {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	delete(f, key)
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// takeString is take for optional strings. A present value that decodes to
// the empty string stays in the leftover fields so it is written back.
func (f fields) takeString(key string, v *string) error {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	if *v != "" {
		delete(f, key)
	}
	return nil
}

// takeInt is take for ids. Whole-valued numbers such as 1.0 are accepted;
// strings and fractions are not.
func (f fields) takeInt(key string, v *int) error {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	delete(f, key)
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if bytes.HasPrefix(trimmed, []byte(`"`)) {
		return fmt.Errorf("field %q: %w", key, errNotInteger)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	i, err := intValue(n)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	*v = i
	return nil
}

var errNotInteger = errors.New("not an integer")

func intValue(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, fmt.Errorf("%w: %s", errNotInteger, n)
	}
	return int(f), nil
}

func (f fields) extra() map[string]json.RawMessage {
	if len(f) == 0 {
		return nil
	}
	return f
}

func (f fields) put(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	f[key] = raw
	return nil
}

func withExtra(extra map[string]json.RawMessage) fields {
	f := make(fields, len(extra)+4)
	for k, v := range extra {
		f[k] = v
	}
	return f
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Category) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*c = Category{}
	if err := f.takeInt("id", &c.ID); err != nil {
		return err
	}
	if err := f.take("name", &c.Name); err != nil {
		return err
	}
	if err := f.takeString("supercategory", &c.Supercategory); err != nil {
		return err
	}
	c.Extra = f.extra()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Category) MarshalJSON() ([]byte, error) {
	f := withExtra(c.Extra)
	if err := f.put("id", c.ID); err != nil {
		return nil, err
	}
	if err := f.put("name", c.Name); err != nil {
		return nil, err
	}
	if c.Supercategory != "" {
		if err := f.put("supercategory", c.Supercategory); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(f))
}

// UnmarshalJSON implements json.Unmarshaler.
func (img *Image) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*img = Image{}
	if err := f.takeInt("id", &img.ID); err != nil {
		return err
	}
	if err := f.take("file_name", &img.FileName); err != nil {
		return err
	}
	img.Extra = f.extra()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (img Image) MarshalJSON() ([]byte, error) {
	f := withExtra(img.Extra)
	if err := f.put("id", img.ID); err != nil {
		return nil, err
	}
	if err := f.put("file_name", img.FileName); err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage(f))
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*a = Annotation{}
	if err := f.takeInt("id", &a.ID); err != nil {
		return err
	}
	if err := f.takeInt("image_id", &a.ImageID); err != nil {
		return err
	}
	if err := f.takeInt("category_id", &a.CategoryID); err != nil {
		return err
	}
	if err := f.takeString("name", &a.Name); err != nil {
		return err
	}
	a.Extra = f.extra()
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Annotation) MarshalJSON() ([]byte, error) {
	f := withExtra(a.Extra)
	if err := f.put("id", a.ID); err != nil {
		return nil, err
	}
	if err := f.put("image_id", a.ImageID); err != nil {
		return nil, err
	}
	if err := f.put("category_id", a.CategoryID); err != nil {
		return nil, err
	}
	if a.Name != "" {
		if err := f.put("name", a.Name); err != nil {
			return nil, err
		}
	}
	return json.Marshal(map[string]json.RawMessage(f))
}

// UnmarshalJSON implements json.Unmarshaler. The licenses and info sections
// are accepted either as a list or as a single object, since COCO exports
// disagree on the shape; anything else is dropped.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Licenses    json.RawMessage `json:"licenses"`
		Info        json.RawMessage `json:"info"`
		Categories  []Category      `json:"categories"`
		Images      []Image         `json:"images"`
		Annotations []Annotation    `json:"annotations"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{
		Licenses:    decodeRecords(raw.Licenses),
		Info:        decodeRecords(raw.Info),
		Categories:  raw.Categories,
		Images:      raw.Images,
		Annotations: raw.Annotations,
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Nil sections are written as empty
// lists.
func (d Document) MarshalJSON() ([]byte, error) {
	type document Document
	out := document(d)
	if out.Licenses == nil {
		out.Licenses = []Record{}
	}
	if out.Info == nil {
		out.Info = []Record{}
	}
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	if out.Images == nil {
		out.Images = []Image{}
	}
	if out.Annotations == nil {
		out.Annotations = []Annotation{}
	}
	return json.Marshal(out)
}

func decodeRecords(data json.RawMessage) []Record {
	if len(data) == 0 {
		return nil
	}
	var many []Record
	if err := json.Unmarshal(data, &many); err == nil {
		return many
	}
	var one Record
	if err := json.Unmarshal(data, &one); err == nil && one != nil {
		return []Record{one}
	}
	return nil
}
