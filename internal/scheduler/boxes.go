package scheduler

// BoxInfo is the display metadata for one Leitner tier.
type BoxInfo struct {
	Level       int
	Name        string
	Description string
	// Spacing is the review cadence label shown in box listings. The
	// labels describe the conceptual tier spacing and are known to lag
	// the actual interval table by one step; they are kept verbatim
	// pending a product decision.
	Spacing string
}

var boxes = [MaxBoxLevel]BoxInfo{
	{Level: 1, Name: "New", Description: "Cards you just started learning", Spacing: "Daily review"},
	{Level: 2, Name: "Learning", Description: "Cards you're actively learning", Spacing: "Every 3 days"},
	{Level: 3, Name: "Reviewing", Description: "Cards in regular review", Spacing: "Weekly"},
	{Level: 4, Name: "Familiar", Description: "Cards you know well", Spacing: "Every 2 weeks"},
	{Level: 5, Name: "Mastered", Description: "Cards you've mastered", Spacing: "Monthly"},
}

// Boxes returns the display metadata for all five tiers, in level order.
func Boxes() []BoxInfo {
	out := make([]BoxInfo, MaxBoxLevel)
	copy(out, boxes[:])
	return out
}

// Box returns the metadata for one tier. Out-of-range levels are clamped.
func Box(level int) BoxInfo {
	return boxes[clampBox(level)-1]
}
