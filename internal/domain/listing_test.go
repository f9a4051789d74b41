package domain

import (
	"math"
	"testing"
)

func TestSplitResale(t *testing.T) {
	t.Parallel()

	cases := []struct {
		price    uint64
		artist   uint64
		seller   uint64
		platform uint64
	}{
		{price: 100, artist: 40, seller: 40, platform: 20},
		{price: 50, artist: 20, seller: 20, platform: 10},
		{price: 7, artist: 2, seller: 2, platform: 3},
		{price: 5, artist: 2, seller: 2, platform: 1},
		{price: 1, artist: 0, seller: 0, platform: 1},
		{price: 2, artist: 0, seller: 0, platform: 2},
		{price: 3, artist: 1, seller: 1, platform: 1},
		{price: 999_999_999, artist: 399_999_999, seller: 399_999_999, platform: 200_000_001},
	}

	for _, tc := range cases {
		artist, seller, platform, err := SplitResale(tc.price)
		if err != nil {
			t.Fatalf("price %d: unexpected error %v", tc.price, err)
		}
		if artist != tc.artist || seller != tc.seller || platform != tc.platform {
			t.Fatalf("price %d: got %d/%d/%d, want %d/%d/%d",
				tc.price, artist, seller, platform, tc.artist, tc.seller, tc.platform)
		}
	}
}

func TestSplitResale_SumsExactly(t *testing.T) {
	t.Parallel()

	for price := uint64(1); price <= 10_000; price++ {
		artist, seller, platform, err := SplitResale(price)
		if err != nil {
			t.Fatalf("price %d: unexpected error %v", price, err)
		}
		if artist+seller+platform != price {
			t.Fatalf("price %d: shares %d+%d+%d do not sum to price",
				price, artist, seller, platform)
		}
	}
}

func TestSplitResale_Overflow(t *testing.T) {
	t.Parallel()

	if _, _, _, err := SplitResale(math.MaxUint64); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	if _, _, _, err := SplitResale(math.MaxUint64 / ArtistSharePct); err != nil {
		t.Fatalf("expected no error at the boundary, got %v", err)
	}
}
