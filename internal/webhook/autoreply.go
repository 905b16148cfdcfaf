package webhook

import "strings"

// replyCategory pairs trigger keywords with a response template. The
// slice order is the match order; the first category with a keyword hit
// wins, so "terima kasih atas bantuan" answers as thanks, not help.
type replyCategory struct {
	name     string
	keywords []string
	template string
}

var replyCategories = []replyCategory{
	{
		name:     "greeting",
		keywords: []string{"hello", "hi", "halo", "hai", "assalamualaikum", "selamat pagi", "selamat siang", "selamat sore", "selamat malam"},
		template: "Halo! Selamat datang di layanan kami. Ada yang bisa kami bantu?",
	},
	{
		name:     "thanks",
		keywords: []string{"thank", "thanks", "terima kasih", "makasih"},
		template: "Sama-sama! Senang bisa membantu Anda.",
	},
	{
		name:     "goodbye",
		keywords: []string{"bye", "goodbye", "selamat tinggal", "sampai jumpa"},
		template: "Sampai jumpa! Semoga harimu menyenangkan.",
	},
	{
		name:     "help",
		keywords: []string{"help", "bantuan", "tolong"},
		template: "Kami siap membantu! Silakan jelaskan kebutuhan Anda.",
	},
	{
		name:     "status",
		keywords: []string{"status", "how are you", "apa kabar"},
		template: "Kami baik-baik saja! Bagaimana dengan Anda?",
	},
	{
		name:     "business",
		keywords: []string{"price", "harga", "produk", "layanan", "booking"},
		template: "Untuk informasi harga dan layanan, silakan hubungi tim sales kami.",
	},
	{
		name:     "location",
		keywords: []string{"lokasi", "alamat", "dimana", "address"},
		template: "Kantor kami berlokasi di Jl. Contoh No. 123, Jakarta.",
	},
	{
		name:     "contact",
		keywords: []string{"contact", "kontak", "hubungi", "telp", "phone"},
		template: "Hubungi kami di: 021-1234567 atau wa.me/628123456789",
	},
}

const defaultReply = "Terima kasih atas pesan Anda. Kami akan segera merespons."

// MatchAutoReply returns the reply for an incoming message and the
// category that produced it. Matching is case-insensitive substring;
// nothing matching falls through to the default template.
func MatchAutoReply(message string) (reply, category string) {
	lower := strings.ToLower(message)
	for _, cat := range replyCategories {
		for _, kw := range cat.keywords {
			if strings.Contains(lower, kw) {
				return cat.template, cat.name
			}
		}
	}
	return defaultReply, "default"
}
