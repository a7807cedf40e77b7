package configuration

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestDatabaseOptions_ConnectionString(t *testing.T) {
	opts := DatabaseOptions{
		Name:     "zentraqms",
		Host:     "db.internal",
		Port:     "5433",
		User:     "qms",
		Password: "secret",
	}
	require.Equal(t,
		"host=db.internal port=5433 user=qms dbname=zentraqms password=secret sslmode=disable",
		opts.ConnectionString(),
	)
}

func TestLogrusLogLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"silent": logrus.PanicLevel,
		"error":  logrus.ErrorLevel,
		"warn":   logrus.WarnLevel,
		"info":   logrus.InfoLevel,
		"debug":  logrus.DebugLevel,
		"bogus":  logrus.ErrorLevel,
		"":       logrus.ErrorLevel,
	}
	for level, want := range cases {
		c := &Configuration{LogLevel: level}
		require.Equal(t, want, c.LogrusLogLevel(), "level=%q", level)
	}
}

func TestValidateSectors_NormalizesDefaultSector(t *testing.T) {
	c := &Configuration{}
	c.Validation.DefaultSector = " salud "
	require.NoError(t, c.validateSectors())
	require.Equal(t, "SALUD", c.Validation.DefaultSector)

	c.Validation.DefaultSector = ""
	require.NoError(t, c.validateSectors())
	require.Equal(t, "UNIVERSAL", c.Validation.DefaultSector)
}

func TestLoadEnv_NoFilesIsNotAnError(t *testing.T) {
	n, err := LoadEnv([]string{"definitely-missing.env"})
	require.NoError(t, err)
	require.Equal(t, 0, n)
}
