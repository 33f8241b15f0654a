package feature_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sqlport-dev/sqlport/pkg/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTargets = []string{"ansi", "postgres", "mysql", "sqlite"}

func TestMatrixCompleteness(t *testing.T) {
	m := feature.NewMatrix(allTargets)
	require.NoError(t, m.Validate())

	for _, tag := range feature.All() {
		for _, target := range allTargets {
			c, err := m.Lookup(tag, target)
			require.NoError(t, err, "missing matrix entry for %s on %s", tag, target)
			if c.Verdict == feature.SupportedWithRewrite {
				assert.NotEmpty(t, c.Rewrite, "%s on %s rewrites without a rule", tag, target)
			}
		}
	}
}

func TestMatrixLookupUnknownTarget(t *testing.T) {
	m := feature.NewMatrix(allTargets)
	_, err := m.Lookup(feature.SerialColumn, "oracle")
	var uerr *feature.UnknownFeatureTagError
	require.ErrorAs(t, err, &uerr)
	assert.Equal(t, "oracle", uerr.Target)
}

func TestMatrixLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewrites.yaml")
	doc := `rewrites:
  - feature: serial-column
    target: mysql
    rewrite: "BIGINT AUTO_INCREMENT PRIMARY KEY"
  - feature: jsonb-type
    target: mysql
    verdict: supported
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m := feature.NewMatrix(allTargets)
	require.NoError(t, m.LoadOverrides(path))

	c, err := m.Lookup(feature.SerialColumn, "mysql")
	require.NoError(t, err)
	assert.Equal(t, feature.SupportedWithRewrite, c.Verdict)
	assert.Equal(t, "BIGINT AUTO_INCREMENT PRIMARY KEY", c.Rewrite)

	c, err = m.Lookup(feature.JsonbType, "mysql")
	require.NoError(t, err)
	assert.Equal(t, feature.Supported, c.Verdict)
}

func TestMatrixLoadOverridesRejectsUnknownFeature(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rewrites.yaml")
	doc := `rewrites:
  - feature: no-such-feature
    target: mysql
    verdict: supported
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	m := feature.NewMatrix(allTargets)
	require.Error(t, m.LoadOverrides(path))
}

func TestFeatureTagRoundTrip(t *testing.T) {
	for _, tag := range feature.All() {
		parsed, err := feature.Parse(tag.String())
		require.NoError(t, err, tag.String())
		assert.Equal(t, tag, parsed)
	}
	_, err := feature.Parse("bogus")
	require.Error(t, err)
}

func TestVerdictWorse(t *testing.T) {
	assert.Equal(t, feature.Unsupported, feature.Supported.Worse(feature.Unsupported))
	assert.Equal(t, feature.Unsupported, feature.Unsupported.Worse(feature.Supported))
	assert.Equal(t, feature.SupportedWithRewrite, feature.Supported.Worse(feature.SupportedWithRewrite))
	assert.Equal(t, feature.SupportedWithRewrite, feature.SupportedWithRewrite.Worse(feature.Supported))
}
