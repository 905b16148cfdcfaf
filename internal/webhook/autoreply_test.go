package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchAutoReply(t *testing.T) {
	tests := []struct {
		name         string
		message      string
		wantCategory string
	}{
		{"greeting english", "Hello there", "greeting"},
		{"greeting indonesian", "Selamat pagi pak", "greeting"},
		{"thanks", "terima kasih banyak", "thanks"},
		{"thanks short", "makasih ya", "thanks"},
		{"goodbye", "sampai jumpa besok", "goodbye"},
		{"help", "saya butuh bantuan", "help"},
		{"status", "apa kabar?", "status"},
		{"business", "berapa harga produk ini", "business"},
		{"location", "dimana alamat kantor", "location"},
		{"contact", "minta nomor telp dong", "contact"},
		{"case insensitive", "HALO SEMUA", "greeting"},
		{"no match falls to default", "zzz qqq", "default"},
		{"empty message", "", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, category := MatchAutoReply(tt.message)
			assert.Equal(t, tt.wantCategory, category)
			assert.NotEmpty(t, reply)
		})
	}
}

func TestMatchAutoReplyFirstCategoryWins(t *testing.T) {
	// "terima kasih" (thanks) and "bantuan" (help) both appear; thanks
	// is earlier in the match order.
	_, category := MatchAutoReply("terima kasih atas bantuan nya")
	assert.Equal(t, "thanks", category)

	// greeting beats status
	_, category = MatchAutoReply("halo, apa kabar?")
	assert.Equal(t, "greeting", category)
}
