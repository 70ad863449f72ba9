package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gocmark/pkg/config"
)

func isolatedOptions(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	result, err := Load(context.Background(), isolatedOptions(t.TempDir()))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FormatTree, result.Config.Format)
	assert.Equal(t, "auto", result.Config.Color)
	assert.False(t, result.Config.Smart)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ".gocmark.yml")
	writeFile(t, configPath, "smart: true\nformat: xml\nignore:\n  - vendor/**\n")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	assert.True(t, result.Config.Smart)
	assert.Equal(t, config.FormatXML, result.Config.Format)
	assert.Equal(t, []string{"vendor/**"}, result.Config.Ignore)
	assert.Equal(t, []string{configPath}, result.LoadedFrom)
	assert.Equal(t, configPath, result.Paths.Project)
}

func TestLoad_ProjectConfigFromSubdirectory(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	configPath := filepath.Join(tmpDir, "gocmark.yaml")
	writeFile(t, configPath, "sourcepos: true\n")

	subDir := filepath.Join(tmpDir, "docs", "guide")
	require.NoError(t, os.MkdirAll(subDir, 0o755))

	result, err := Load(context.Background(), isolatedOptions(subDir))
	require.NoError(t, err)
	assert.True(t, result.Config.SourcePos)
	assert.Equal(t, configPath, result.Paths.Project)
}

func TestLoad_IgnoreProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), "smart: true\n")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreProjectConfig = true

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.False(t, result.Config.Smart)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_ExplicitConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), "format: xml\n")
	customPath := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, customPath, "format: json\ndetect_languages: true\n")

	opts := isolatedOptions(tmpDir)
	opts.ExplicitPath = customPath

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.True(t, result.Config.DetectLanguages)
	assert.Len(t, result.LoadedFrom, 2)
	assert.Equal(t, customPath, result.LoadedFrom[1])
}

func TestLoad_CLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), "format: xml\nextensions: [.md]\n")

	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{
		Format:     config.FormatJSON,
		Jobs:       4,
		Extensions: []string{".markdown"},
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.Equal(t, 4, result.Config.Jobs)
	assert.Equal(t, []string{".markdown"}, result.Config.Extensions)
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"malformed yaml", "format: [unclosed\n", "parse YAML"},
		{"unknown key", "flavor: gfm\n", "field flavor not found"},
		{"bad format", "format: html\n", `invalid format "html"`},
		{"bad ignore glob", "ignore:\n  - \"[\"\n", "invalid glob pattern"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), tc.content)

			_, err := Load(context.Background(), isolatedOptions(tmpDir))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_EmptyConfigFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), "")

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	assert.Equal(t, config.FormatTree, result.Config.Format)
	assert.Len(t, result.LoadedFrom, 1)
}

func TestLoad_ExtensionWarning(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	opts := isolatedOptions(tmpDir)
	opts.CLIConfig = &config.Config{Extensions: []string{"md"}}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no leading dot")
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	require.ErrorIs(t, err, context.Canceled)
}

func TestLoad_Environment(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), "format: xml\n")

	t.Setenv("GOCMARK_FORMAT", "json")
	t.Setenv("GOCMARK_SMART", "1")
	t.Setenv("GOCMARK_IGNORE", " a/** , ,b.md")

	opts := isolatedOptions(tmpDir)
	opts.IgnoreEnv = false

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, config.FormatJSON, result.Config.Format)
	assert.True(t, result.Config.Smart)
	assert.Equal(t, []string{"a/**", "b.md"}, result.Config.Ignore)
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"bool", "GOCMARK_SOURCEPOS", "maybe"},
		{"int", "GOCMARK_JOBS", "many"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			err := LoadFromEnv(config.NewConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.key)
		})
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	require.Len(t, vars, len(envMappings))
	for i, v := range vars {
		assert.Contains(t, v.Name, envVarPrefix)
		assert.NotEmpty(t, v.Description)
		if i > 0 {
			assert.Less(t, vars[i-1].Name, v.Name)
		}
	}
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	project := &config.Config{Smart: true, Ignore: []string{"x"}}
	cli := &config.Config{Format: config.FormatJSON, Ignore: []string{}}

	merged := MergeAll(base, project, cli)
	assert.True(t, merged.Smart)
	assert.Equal(t, config.FormatJSON, merged.Format)
	assert.Equal(t, "auto", merged.Color)
	assert.Empty(t, merged.Ignore)
	assert.NotNil(t, merged.Ignore)

	assert.Nil(t, MergeAll())
	assert.Same(t, base, merge(base, nil))
	assert.Same(t, cli, merge(nil, cli))
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		cfg          *config.Config
		wantErrors   int
		wantWarnings int
	}{
		{"nil", nil, 0, 0},
		{"defaults", config.NewConfig(), 0, 0},
		{"negative jobs", &config.Config{Jobs: -1}, 1, 0},
		{"bad color", &config.Config{Color: "sometimes"}, 1, 0},
		{"extension without dot", &config.Config{Extensions: []string{"md", ".markdown"}}, 0, 1},
		{"many problems", &config.Config{Format: "pdf", Jobs: -2, Ignore: []string{"["}}, 3, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := Validate(tc.cfg)
			assert.Len(t, result.Errors, tc.wantErrors)
			assert.Len(t, result.Warnings, tc.wantWarnings)
			assert.Equal(t, tc.wantErrors == 0, result.Valid())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	result := ValidateWithFile(&config.Config{Jobs: -1}, "/p/.gocmark.yml")
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "/p/.gocmark.yml: jobs: jobs must be >= 0 (0 means auto)", result.Errors[0].Error())
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yml"), "smart: true\n")
	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestFindProjectConfig_PreferenceOrder(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "gocmark.yml"), "")
	writeFile(t, filepath.Join(tmpDir, ".gocmark.yaml"), "")

	path, err := FindProjectConfig(context.Background(), tmpDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".gocmark.yaml"), path)
}
