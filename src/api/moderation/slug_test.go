package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"diacritics and punctuation", "Café Árbol S.A.", "cafe-arbol-s-a"},
		{"surrounding and inner spaces", "  Multi   Space  ", "multi-space"},
		{"simple", "Acme DeFi", "acme-defi"},
		{"already clean", "acme-defi", "acme-defi"},
		{"uppercase", "BITCOIN MX", "bitcoin-mx"},
		{"enye", "Año Nuevo", "ano-nuevo"},
		{"symbols collapse to one hyphen", "DeFi / Web3 & NFTs", "defi-web3-nfts"},
		{"digits kept", "Top 10 Wallets 2024", "top-10-wallets-2024"},
		{"empty", "", ""},
		{"only punctuation", "!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	in := "Eventos Híbridos: CDMX & Guadalajara"
	assert.Equal(t, Slugify(in), Slugify(in))
}
