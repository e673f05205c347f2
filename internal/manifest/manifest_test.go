package manifest

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

const blueprintManifest = `{
  "name": "supercharge",
  "description": "The Supercharge blueprint <app>",
  "version": "1.4.2",
  "private": true,
  "scripts": {
    "start": "node server.js",
    "test": "lab --assert @hapi/code"
  },
  "dependencies": {
    "@supercharge/framework": "~1.0.0"
  }
}
`

func TestParse_PreservesOrder(t *testing.T) {
	m, err := Parse([]byte(blueprintManifest))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []string{"name", "description", "version", "private", "scripts", "dependencies"}
	got := m.Keys()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if m.Name() != "supercharge" {
		t.Errorf("Name() = %q", m.Name())
	}
	if m.Version() != "1.4.2" {
		t.Errorf("Version() = %q", m.Version())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", "not json"},
		{"array", `["a"]`},
		{"truncated", `{"name": "x"`},
		{"trailing data", `{"name": "x"} {"name": "y"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.in)); err == nil {
				t.Errorf("expected error for %q", tt.in)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	m, err := Parse([]byte(blueprintManifest))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if err := m.Sanitize("My App"); err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}

	if m.Name() != "my-app" {
		t.Errorf("Name() = %q, want %q", m.Name(), "my-app")
	}
	if m.Version() != "0.0.0" {
		t.Errorf("Version() = %q, want %q", m.Version(), "0.0.0")
	}
	if m.Description() != "" {
		t.Errorf("Description() = %q, want empty", m.Description())
	}
	if !m.Has(FieldDescription) {
		t.Error("description should be kept as an empty string, not removed")
	}
}

func TestSanitize_AddsMissingFields(t *testing.T) {
	m, err := Parse([]byte(`{"name": "blueprint"}`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if err := m.Sanitize("api"); err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}

	want := "name,version,description"
	if got := strings.Join(m.Keys(), ","); got != want {
		t.Errorf("Keys() = %q, want %q", got, want)
	}
}

func TestEncode(t *testing.T) {
	m, err := Parse([]byte(blueprintManifest))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if err := m.Sanitize("my-app"); err != nil {
		t.Fatalf("Sanitize() error: %v", err)
	}

	data, err := m.Encode()
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	want := `{
  "name": "my-app",
  "description": "",
  "version": "0.0.0",
  "private": true,
  "scripts": {
    "start": "node server.js",
    "test": "lab --assert @hapi/code"
  },
  "dependencies": {
    "@supercharge/framework": "~1.0.0"
  }
}
`
	if string(data) != want {
		t.Errorf("Encode() mismatch\n--- got ---\n%s\n--- want ---\n%s", data, want)
	}
}

func TestLoadAndSave(t *testing.T) {
	fsys := afero.NewMemMapFs()
	if err := afero.WriteFile(fsys, "/work/my-app/package.json", []byte(blueprintManifest), 0600); err != nil {
		t.Fatal(err)
	}

	m, err := Load(fsys, "/work/my-app")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if err := m.Sanitize("my-app"); err != nil {
		t.Fatal(err)
	}
	if err := Save(fsys, "/work/my-app", m); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := Load(fsys, "/work/my-app")
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if reloaded.Version() != "0.0.0" || reloaded.Description() != "" || reloaded.Name() != "my-app" {
		t.Errorf("reloaded manifest = name %q version %q description %q",
			reloaded.Name(), reloaded.Version(), reloaded.Description())
	}

	info, err := fsys.Stat("/work/my-app/package.json")
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want existing mode 0600", perm)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nowhere")
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestSave_RejectsInvalidName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	m, err := Parse([]byte(`{"name": "Bad Name", "version": "1.0.0"}`))
	if err != nil {
		t.Fatal(err)
	}

	err = Save(fsys, "/app", m)
	if err == nil {
		t.Fatal("expected schema error for invalid name")
	}
	if !strings.Contains(err.Error(), "/name") {
		t.Errorf("error should point at /name, got %v", err)
	}
	if ok, _ := afero.Exists(fsys, "/app/package.json"); ok {
		t.Error("invalid manifest must not be written")
	}
}

func TestSave_RejectsBadVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"not semver", "latest", "not valid semver"},
		{"partial", "1.2", "not valid semver"},
		{"v prefix", "v1.0.0", "not valid semver"},
		{"below baseline", "0.0.0-alpha.1", "below 0.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := afero.NewMemMapFs()
			m, err := Parse([]byte(`{"name": "my-app", "version": "` + tt.version + `"}`))
			if err != nil {
				t.Fatal(err)
			}

			err = Save(fsys, "/app", m)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error = %v, want it to contain %q", err, tt.want)
			}
			if ok, _ := afero.Exists(fsys, "/app/package.json"); ok {
				t.Error("invalid manifest must not be written")
			}
		})
	}
}

func TestBaselineVersion(t *testing.T) {
	if got := BaselineVersion.String(); got != "0.0.0" {
		t.Errorf("BaselineVersion = %q, want %q", got, "0.0.0")
	}
}
