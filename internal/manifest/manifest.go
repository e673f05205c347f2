package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"
)

// FileName is the manifest file at the root of a scaffolded project.
const FileName = "package.json"

// Field names rewritten after cloning.
const (
	FieldName        = "name"
	FieldVersion     = "version"
	FieldDescription = "description"
)

// BaselineVersion is the version every new project starts from.
var BaselineVersion = semver.MustParse("0.0.0")

// Manifest is a package.json held as an ordered set of top-level fields.
type Manifest struct {
	keys   []string
	values map[string]json.RawMessage
}

// Parse decodes a JSON object, keeping its top-level key order.
func Parse(data []byte) (*Manifest, error) {
	m := &Manifest{values: make(map[string]json.RawMessage)}
	if err := m.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return m, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("parsing manifest: expected a JSON object")
	}

	m.keys = nil
	m.values = make(map[string]json.RawMessage)

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing manifest: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("parsing manifest: expected object key, got %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("parsing manifest field %q: %w", key, err)
		}
		m.setRaw(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parsing manifest: %w", err)
	}
	if _, err := dec.Token(); err == nil {
		return fmt.Errorf("parsing manifest: unexpected data after top-level object")
	}
	return nil
}

// MarshalJSON implements json.Marshaler. The output is compact.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalNoEscape(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.values[key]); err != nil {
			return nil, fmt.Errorf("encoding manifest field %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Keys returns the top-level field names in file order.
func (m *Manifest) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// String returns the string value of key, or "" if it is absent or not a string.
func (m *Manifest) String(key string) string {
	raw, ok := m.values[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Has reports whether key is present.
func (m *Manifest) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Name returns the package name.
func (m *Manifest) Name() string { return m.String(FieldName) }

// Version returns the package version.
func (m *Manifest) Version() string { return m.String(FieldVersion) }

// Description returns the package description.
func (m *Manifest) Description() string { return m.String(FieldDescription) }

// Set stores value under key. Existing keys keep their position; new keys are appended.
func (m *Manifest) Set(key string, value any) error {
	raw, err := marshalNoEscape(value)
	if err != nil {
		return fmt.Errorf("encoding manifest field %q: %w", key, err)
	}
	m.setRaw(key, raw)
	return nil
}

// Sanitize resets the fields inherited from the blueprint: the name becomes
// the slug of projectName, the version the baseline, and the description empty.
func (m *Manifest) Sanitize(projectName string) error {
	if err := m.Set(FieldName, Slug(projectName)); err != nil {
		return err
	}
	if err := m.Set(FieldVersion, BaselineVersion.String()); err != nil {
		return err
	}
	return m.Set(FieldDescription, "")
}

// Encode returns the manifest indented with two spaces and a trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return nil, fmt.Errorf("indenting manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func (m *Manifest) setRaw(key string, raw json.RawMessage) {
	if m.values == nil {
		m.values = make(map[string]json.RawMessage)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = raw
}

// marshalNoEscape encodes v without HTML escaping, matching how npm writes package.json.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Load reads dir/package.json from fsys.
func Load(fsys afero.Fs, dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Save validates m and writes it to dir/package.json on fsys, keeping the
// existing file mode when there is one.
func Save(fsys afero.Fs, dir string, m *Manifest) error {
	path := filepath.Join(dir, FileName)

	data, err := m.Encode()
	if err != nil {
		return err
	}

	result, err := Validate(data)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return fmt.Errorf("%s is invalid: %s", path, result.Summary())
	}
	if err := checkVersion(m.Version()); err != nil {
		return fmt.Errorf("%s is invalid: %w", path, err)
	}

	perm := os.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := afero.WriteFile(fsys, path, data, perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// checkVersion requires a strict semver version no older than the baseline.
func checkVersion(version string) error {
	v, err := semver.StrictNewVersion(version)
	if err != nil {
		return fmt.Errorf("version %q is not valid semver: %w", version, err)
	}
	if v.LessThan(BaselineVersion) {
		return fmt.Errorf("version %q is below %s", version, BaselineVersion)
	}
	return nil
}

// Store loads and saves manifests; it satisfies the scaffold pipeline's
// manifest collaborator.
type Store struct{}

// Load reads the manifest in dir.
func (Store) Load(fsys afero.Fs, dir string) (*Manifest, error) { return Load(fsys, dir) }

// Save writes the manifest in dir.
func (Store) Save(fsys afero.Fs, dir string, m *Manifest) error { return Save(fsys, dir, m) }
