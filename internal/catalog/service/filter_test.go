package service

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterProducts(t *testing.T) {
	snapshot := []catalogdomain.Product{
		{ID: snowflake.ID(1), Name: "Clavier mécanique", Description: "AZERTY"},
		{ID: snowflake.ID(2), Name: "Souris", Description: "sans fil"},
		{ID: snowflake.ID(3), Name: "Écran 27\"", Description: "IPS"},
	}

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{"empty query returns all", "", []string{"Clavier mécanique", "Souris", "Écran 27\""}},
		{"case insensitive name match", "CLAVIER", []string{"Clavier mécanique"}},
		{"description match", "fil", []string{"Souris"}},
		{"id match", "2", []string{"Souris"}},
		{"no match", "imprimante", []string{}},
		{"whitespace trimmed", "  souris  ", []string{"Souris"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProducts(tt.query, snapshot)
			names := make([]string, 0, len(got))
			for _, product := range got {
				names = append(names, product.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestFilterClients(t *testing.T) {
	snapshot := []catalogdomain.Client{
		{ID: snowflake.ID(10), Name: "Société Alpha", Email: "contact@alpha.tn", FiscalID: "1234567A"},
		{ID: snowflake.ID(11), Name: "Beta SARL", Email: "info@beta.tn"},
	}

	assert.Len(t, FilterClients("alpha", snapshot), 1)
	assert.Len(t, FilterClients("1234567a", snapshot), 1)
	assert.Len(t, FilterClients(".tn", snapshot), 2)
	assert.Empty(t, FilterClients("gamma", snapshot))
}
