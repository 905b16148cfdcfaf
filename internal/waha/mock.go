package waha

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// mockGenerator synthesizes WhatsApp-shaped records so API consumers can
// develop against a stable response shape without a live session. Content
// is random but drawn from a seedable source; the pagination and sort
// contract is the invariant callers rely on.
type mockGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newMockGenerator(seed int64) *mockGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &mockGenerator{rng: rand.New(rand.NewSource(seed))}
}

// mockMessageTotal is the corpus size for mock chat messages.
const mockMessageTotal = 20

type mockContactSeed struct {
	id, name, notifyName string
	isGroup              bool
}

var mockContactSeeds = []mockContactSeed{
	{"62818114411@c.us", "Pak Feri Coworker", "Pak Feri", false},
	{"6281339691260@c.us", "Mas Feri", "Mas Feri", false},
	{"120363419906557011@g.us", "Developer Coworker", "Developer Coworker", true},
	{"628988146713@c.us", "Senseiiii", "Senseii", false},
	{"120363419759004678@g.us", "Kampus dev team", "Kampus dev team", true},
	{"628156700525@c.us", "Om Haibannn Wail", "Om Haiban", false},
	{"6289505982878@c.us", "Sabil", "Sabil", false},
	{"6282243673017@c.us", "Me", "Me", false},
}

var mockMessageBodies = []string{
	"Halo, bagaimana kabarnya?",
	"Baik-baik saja, terima kasih!",
	"Apakah project sudah selesai?",
	"Sudah, tinggal testing final",
	"Oke, saya cek dulu ya",
	"Siap, saya tunggu update nya",
	"Documents sudah saya kirim",
	"Terima kasih atas bantuannya",
	"Sampai jumpa besok!",
	"Have a great day!",
}

var (
	mockFirstNames = []string{"Andi", "Budi", "Citra", "Dewi", "Eko", "Fajar", "Gita", "Hadi", "Indra", "Julia"}
	mockLastNames  = []string{"Santoso", "Wijaya", "Putra", "Sari", "Hidayat", "Permata"}
	mockGroupNames = []string{"Family Group", "Work Team", "School Friends", "Project Team", "Community"}
	mockLastLines  = []string{
		"Oke, saya tunggu ya", "Baik, terima kasih", "Sampai jumpa besok",
		"Have a great day!", "Documents sudah saya kirim", "Saya cek dulu",
		"Siap, saya kerjakan", "Terima kasih infonya", "Oke, mengerti",
		"Saya setuju dengan itu", "Kapan kita mulai?", "Bagaimana progresnya?",
	}
)

// GenerateMockContacts returns a mock contact page. Sort first, then slice:
// count = min(limit, total-min(offset,total)),
// hasMore = (min(offset,total)+limit) < total.
func (c *Client) GenerateMockContacts(limit, offset int, sortBy, sortOrder string) map[string]any {
	c.mock.mu.Lock()
	rng := c.mock.rng
	now := time.Now().Unix()

	all := make([]map[string]any, 0, len(mockContactSeeds))
	for _, seed := range mockContactSeeds {
		all = append(all, map[string]any{
			"id":              seed.id,
			"name":            seed.name,
			"notifyName":      seed.notifyName,
			"pushname":        seed.name,
			"isGroup":         seed.isGroup,
			"isWAContact":     true,
			"profilePicUrl":   nil,
			"lastMessage":     mockLastLines[rng.Intn(len(mockLastLines))],
			"lastMessageTime": (now - int64(rng.Intn(86400))) * 1000,
			"unreadCount":     rng.Intn(6),
		})
	}
	c.mock.mu.Unlock()

	sortRecords(all, sortBy, sortOrder)
	page, safeOffset, hasMore := paginate(all, limit, offset)

	return map[string]any{
		"contacts":     page,
		"total":        len(all),
		"limit":        limit,
		"offset":       safeOffset,
		"hasMore":      hasMore,
		"mock":         true,
		"generated_at": nowISO(),
	}
}

// GenerateMockChats synthesizes limit+offset chats: the base pool first,
// then generated entries with every third one a group.
func (c *Client) GenerateMockChats(limit, offset int, sortBy, sortOrder string) map[string]any {
	c.mock.mu.Lock()
	rng := c.mock.rng
	now := time.Now()

	needed := limit + offset
	all := make([]map[string]any, 0, needed)
	for i := 0; i < needed; i++ {
		var chat map[string]any
		switch {
		case i < len(mockContactSeeds):
			seed := mockContactSeeds[i]
			chat = map[string]any{
				"id":          seed.id,
				"name":        seed.name,
				"lastMessage": mockLastLines[rng.Intn(len(mockLastLines))],
				"timestamp":   now.Add(-time.Duration(rng.Intn(72)) * time.Hour).Unix(),
				"unreadCount": rng.Intn(6),
				"isGroup":     seed.isGroup,
			}
			if seed.isGroup {
				chat["participants"] = rng.Intn(48) + 3
			} else {
				chat["isOnline"] = rng.Intn(2) == 0
			}
		case i%3 == 0:
			chat = map[string]any{
				"id":           fmt.Sprintf("1203634199%06d@g.us", rng.Intn(900000)+100000),
				"name":         fmt.Sprintf("%s %d", mockGroupNames[rng.Intn(len(mockGroupNames))], i/3),
				"lastMessage":  mockLastLines[rng.Intn(len(mockLastLines))],
				"timestamp":    now.Add(-time.Duration(rng.Intn(168)) * time.Hour).Unix(),
				"unreadCount":  rng.Intn(21),
				"isGroup":      true,
				"participants": rng.Intn(48) + 3,
			}
		default:
			chat = map[string]any{
				"id":          fmt.Sprintf("628%09d@c.us", rng.Intn(900000000)+100000000),
				"name":        mockFirstNames[rng.Intn(len(mockFirstNames))] + " " + mockLastNames[rng.Intn(len(mockLastNames))],
				"lastMessage": mockLastLines[rng.Intn(len(mockLastLines))],
				"timestamp":   now.Add(-time.Duration(rng.Intn(72)) * time.Hour).Unix(),
				"unreadCount": rng.Intn(11),
				"isGroup":     false,
				"isOnline":    rng.Intn(2) == 0,
			}
		}

		chat["pushname"] = chat["name"]
		chat["profilePicUrl"] = nil
		chat["lastMessageTime"] = chat["timestamp"].(int64) * 1000
		chat["isMyContact"] = true
		chat["isWAContact"] = true
		chat["isArchived"] = false
		chat["isPinned"] = false
		chat["isMuted"] = false
		all = append(all, chat)
	}
	c.mock.mu.Unlock()

	sortRecords(all, sortBy, sortOrder)
	page, safeOffset, hasMore := paginate(all, limit, offset)

	totalPages := 1
	if limit > 0 {
		totalPages = (len(all) + limit - 1) / limit
	}
	pageNum := 1
	if limit > 0 {
		pageNum = safeOffset/limit + 1
	}

	return map[string]any{
		"chats":        page,
		"total":        len(all),
		"limit":        limit,
		"offset":       safeOffset,
		"hasMore":      hasMore,
		"page":         pageNum,
		"total_pages":  totalPages,
		"sortBy":       sortBy,
		"sortOrder":    sortOrder,
		"session":      c.defaultSession,
		"mock":         true,
		"generated_at": nowISO(),
	}
}

// GenerateMockMessages returns a mock message page for one chat. The
// corpus is a fixed 20 messages spaced two hours apart.
func (c *Client) GenerateMockMessages(chatID string, limit, offset int, sortBy, sortOrder string) map[string]any {
	c.mock.mu.Lock()
	rng := c.mock.rng
	base := time.Now()

	const self = "6282243673017@c.us"
	all := make([]map[string]any, 0, mockMessageTotal)
	for i := 0; i < mockMessageTotal; i++ {
		ts := base.Add(-time.Duration(i*2) * time.Hour).Unix()
		fromMe := rng.Intn(2) == 0
		from, to := chatID, self
		if fromMe {
			from, to = self, chatID
		}
		all = append(all, map[string]any{
			"id":           fmt.Sprintf("mock_msg_%d_%d", i, ts),
			"timestamp":    ts,
			"from":         from,
			"to":           to,
			"body":         mockMessageBodies[rng.Intn(len(mockMessageBodies))],
			"fromMe":       fromMe,
			"hasMedia":     false,
			"mediaType":    nil,
			"mediaCaption": nil,
			"ack":          rng.Intn(3) + 1,
		})
	}
	c.mock.mu.Unlock()

	sortRecords(all, sortBy, sortOrder)
	page, safeOffset, hasMore := paginate(all, limit, offset)

	return map[string]any{
		"messages":     page,
		"total":        len(all),
		"limit":        limit,
		"offset":       safeOffset,
		"hasMore":      hasMore,
		"mock":         true,
		"generated_at": nowISO(),
	}
}

// paginate slices a sorted record list. Offsets past the end clamp to the
// end rather than erroring.
func paginate(items []map[string]any, limit, offset int) (page []map[string]any, safeOffset int, hasMore bool) {
	total := len(items)
	safeOffset = offset
	if safeOffset > total {
		safeOffset = total
	}
	end := safeOffset + limit
	if end > total {
		end = total
	}
	return items[safeOffset:end], safeOffset, safeOffset+limit < total
}

// sortRecords stably sorts records by the given field. Strings compare
// lexicographically, numbers numerically; unknown fields leave the order
// untouched apart from stability.
func sortRecords(items []map[string]any, sortBy, sortOrder string) {
	if sortBy == "" {
		return
	}
	desc := strings.EqualFold(sortOrder, "desc")
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i][sortBy], items[j][sortBy]
		if desc {
			return lessValue(b, a)
		}
		return lessValue(a, b)
	})
}

func lessValue(a, b any) bool {
	if af, aok := toFloat(a); aok {
		bf, _ := toFloat(b)
		return af < bf
	}
	as, _ := a.(string)
	bs, _ := b.(string)
	return as < bs
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
