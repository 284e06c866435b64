package model

// EventLang 公告语言
type EventLang string

const (
	EventLangEN EventLang = "en"
	EventLangKO EventLang = "ko"
	EventLangJA EventLang = "ja"
	EventLangZH EventLang = "zh"
)

// IsValidEventLang 检查语言标识
func IsValidEventLang(lang string) bool {
	switch EventLang(lang) {
	case EventLangEN, EventLangKO, EventLangJA, EventLangZH:
		return true
	}
	return false
}

// Event 活动公告
// 对应数据库表 events
type Event struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"type:varchar(200);not null" json:"title"`
	Slug    string `gorm:"type:varchar(220);uniqueIndex;not null" json:"slug"`
	Summary string `gorm:"type:text" json:"summary"`
	Body    string `gorm:"type:text" json:"body"` // Markdown 或 HTML

	// 缩略图: http(s) 或 data:image/...;base64 均可
	ThumbSrc string `gorm:"type:text" json:"thumb_src"`

	Lang        EventLang `gorm:"type:varchar(2);not null;default:'en';index:idx_event_listing" json:"lang"`
	IsPublished bool      `gorm:"not null;default:true;index:idx_event_listing" json:"is_published"`
	PostedAt    int64     `gorm:"type:bigint;not null;index:idx_event_listing" json:"posted_at"` // 毫秒

	CreatedAt int64 `gorm:"type:bigint;not null;autoCreateTime:milli" json:"created_at"`
}

// TableName 返回表名
func (Event) TableName() string {
	return "events"
}
