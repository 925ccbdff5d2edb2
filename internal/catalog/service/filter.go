package service

import (
	"strings"

	catalogdomain "github.com/facturio/facturio/internal/catalog/domain"
)

// FilterProducts returns the products matching a free-text query with a
// case-insensitive substring match over name, description and id.
// An empty query returns the snapshot unchanged.
func FilterProducts(query string, snapshot []catalogdomain.Product) []catalogdomain.Product {
	query = normalizeQuery(query)
	if query == "" {
		return snapshot
	}

	matched := make([]catalogdomain.Product, 0, len(snapshot))
	for _, product := range snapshot {
		if matches(query, product.Name, product.Description, product.ID.String()) {
			matched = append(matched, product)
		}
	}
	return matched
}

// FilterClients applies the same matching over name, email, fiscal id and id.
func FilterClients(query string, snapshot []catalogdomain.Client) []catalogdomain.Client {
	query = normalizeQuery(query)
	if query == "" {
		return snapshot
	}

	matched := make([]catalogdomain.Client, 0, len(snapshot))
	for _, client := range snapshot {
		if matches(query, client.Name, client.Email, client.FiscalID, client.ID.String()) {
			matched = append(matched, client)
		}
	}
	return matched
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matches(query string, fields ...string) bool {
	for _, field := range fields {
		if field == "" {
			continue
		}
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
