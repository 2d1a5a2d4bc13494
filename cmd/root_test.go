package cmd

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/nbakri/kashf/extractor/facts"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func loadEmbeddedConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	viper.SetConfigType("yaml")
	err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML))
	assert.NoError(t, err)
}

// Every embedded pattern must compile; a typo here would otherwise be dropped
// with a warning that default (non-verbose) logging discards.
func TestEmbeddedConfig_PatternsCompile(t *testing.T) {
	loadEmbeddedConfig(t)

	for _, key := range []string{
		"facts.patterns.due_date",
		"facts.patterns.minimum_payment",
		"facts.patterns.balance",
	} {
		patterns := viper.GetStringSlice(key)
		assert.NotEmpty(t, patterns, key)
		for _, p := range patterns {
			_, err := regexp.Compile(`(?i)` + p)
			assert.NoError(t, err, "%s: %s", key, p)
		}
	}
}

func TestEmbeddedConfig_ExtractsStatementFacts(t *testing.T) {
	loadEmbeddedConfig(t)
	extractor := facts.New()

	statement := "AED 250.00 payment due: 05/06/2024\nMinimum Payment: AED 250.00\nNew Balance: AED 4,821.33"
	extracted := extractor.FromText(statement)

	if assert.NotNil(t, extracted.DueDate) {
		assert.Equal(t, "2024-06-05", extracted.DueDate.Format("2006-01-02"))
	}
	if assert.NotNil(t, extracted.MinimumPayment) {
		assert.Equal(t, "250", extracted.MinimumPayment.String())
	}
	if assert.NotNil(t, extracted.CurrentBalance) {
		assert.Equal(t, "4821.33", extracted.CurrentBalance.String())
	}
	assert.Equal(t, "AED", extracted.CurrencyCode)
}

func TestEmbeddedConfig_DHSStatement(t *testing.T) {
	loadEmbeddedConfig(t)
	extractor := facts.New()

	extracted := extractor.FromText("DHS 100.00 payment due: 01/02/2024\nMinimum Due: DHS 100.00")

	if assert.NotNil(t, extracted.DueDate) {
		assert.Equal(t, "2024-02-01", extracted.DueDate.Format("2006-01-02"))
	}
	assert.Equal(t, "DHS", extracted.CurrencyCode)
}

func TestCommandFlags(t *testing.T) {
	assert.NotNil(t, remindCmd.Flags().Lookup("mark-sent"))
	assert.NotNil(t, remindCmd.Flags().Lookup("customer"))
	assert.NotNil(t, importCmd.Flags().Lookup("customer"))
	assert.NotNil(t, importCmd.Flags().Lookup("card"))
}
