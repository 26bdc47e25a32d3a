package types

import "time"

// Proposal statuses
const (
	ProposalPending  = "pending"
	ProposalApproved = "approved"
	ProposalRejected = "rejected"
)

// Content types accepted by the proposal pipeline
const (
	TypeStartup   = "startup"
	TypeEvent     = "event"
	TypeCommunity = "community"
	TypeReferent  = "referent"
	TypeCourse    = "course"
	TypeBlog      = "blog"
	TypeJob       = "job"
)

// Platform users (submitters and admins)
type User struct {
	ID           uint64 `gorm:"primaryKey"`
	Email        string `gorm:"size:256;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null" json:"-"`
	DisplayName  string `gorm:"size:128"`
	IsAdmin      bool   `gorm:"default:false"`
	CreatedAt    time.Time
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey"`
	Name  string `gorm:"size:32;not null"`
	Value string `gorm:"size:256;not null"`
}

// Content proposals awaiting moderation
type Proposal struct {
	ID          uint64  `gorm:"primaryKey"`
	ContentType string  `gorm:"size:32;index;not null"`
	ContentData JSONMap `gorm:"type:json;not null"`
	Status      string  `gorm:"size:16;index;default:'pending'"`
	ProposedBy  uint64  `gorm:"index;not null"`
	ReviewedBy  *uint64
	ReviewedAt  *time.Time
	ReviewNotes string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PublishedRecord is implemented by every published content model.
type PublishedRecord interface {
	TableName() string
	GetSlug() string
	SetSlug(string)
}

type Startup struct {
	ID          uint64     `gorm:"primaryKey"`
	Name        string     `gorm:"size:255;not null"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null"`
	Description string     `gorm:"type:text"`
	Website     string     `gorm:"size:512"`
	LogoURL     string     `gorm:"size:512"`
	Country     string     `gorm:"size:64;default:'Mexico'"`
	Category    string     `gorm:"size:64;index"`
	Tags        StringList `gorm:"type:json"`
	IsFeatured  bool       `gorm:"default:false"`
	FoundedYear int        `gorm:"default:0"`
	TwitterURL  string     `gorm:"size:512"`
	Status      string     `gorm:"size:32;index;default:'published'"`
	ProposalID  *uint64    `gorm:"index"`
	CreatedBy   uint64     `gorm:"index"`
	ViewCount   uint64     `gorm:"default:0"`
	LikeCount   uint64     `gorm:"default:0"`
	ShareCount  uint64     `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Startup) TableName() string    { return "startups" }
func (s *Startup) GetSlug() string   { return s.Slug }
func (s *Startup) SetSlug(sl string) { s.Slug = sl }

// Event types: presencial, online, hibrido
type Event struct {
	ID              uint64 `gorm:"primaryKey"`
	Title           string `gorm:"size:255;not null"`
	Slug            string `gorm:"size:255;uniqueIndex;not null"`
	Description     string `gorm:"type:text"`
	EventType       string `gorm:"size:16;index;default:'presencial'"`
	Location        string `gorm:"size:255"`
	StartDate       *time.Time
	EndDate         *time.Time
	RegistrationURL string     `gorm:"size:512"`
	Tags            StringList `gorm:"type:json"`
	IsFeatured      bool       `gorm:"default:false"`
	Status          string     `gorm:"size:32;index;default:'published'"`
	ProposalID      *uint64    `gorm:"index"`
	CreatedBy       uint64     `gorm:"index"`
	ViewCount       uint64     `gorm:"default:0"`
	LikeCount       uint64     `gorm:"default:0"`
	ShareCount      uint64     `gorm:"default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Event) TableName() string    { return "events" }
func (e *Event) GetSlug() string   { return e.Slug }
func (e *Event) SetSlug(sl string) { e.Slug = sl }

type Community struct {
	ID          uint64     `gorm:"primaryKey"`
	Name        string     `gorm:"size:255;not null"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null"`
	Description string     `gorm:"type:text"`
	Category    string     `gorm:"size:64;index;default:'defi'"`
	Tags        StringList `gorm:"type:json"`
	Website     string     `gorm:"size:512"`
	DiscordURL  string     `gorm:"size:512"`
	TelegramURL string     `gorm:"size:512"`
	TwitterURL  string     `gorm:"size:512"`
	MemberCount int        `gorm:"default:0"`
	Country     string     `gorm:"size:64;default:'Mexico'"`
	Status      string     `gorm:"size:32;index;default:'published'"`
	ProposalID  *uint64    `gorm:"index"`
	CreatedBy   uint64     `gorm:"index"`
	ViewCount   uint64     `gorm:"default:0"`
	LikeCount   uint64     `gorm:"default:0"`
	ShareCount  uint64     `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Community) TableName() string    { return "communities" }
func (c *Community) GetSlug() string   { return c.Slug }
func (c *Community) SetSlug(sl string) { c.Slug = sl }

// Referent tracks: developer, lawyer, financial, designer, marketer, other
type Referent struct {
	ID          uint64     `gorm:"primaryKey"`
	Name        string     `gorm:"size:255;not null"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null"`
	Bio         string     `gorm:"type:text"`
	Track       string     `gorm:"size:32;index;default:'other'"`
	Category    string     `gorm:"size:64"`
	PhotoURL    string     `gorm:"size:512"`
	TwitterURL  string     `gorm:"size:512"`
	LinkedinURL string     `gorm:"size:512"`
	Country     string     `gorm:"size:64;default:'Mexico'"`
	Tags        StringList `gorm:"type:json"`
	Status      string     `gorm:"size:32;index;default:'published'"`
	ProposalID  *uint64    `gorm:"index"`
	CreatedBy   uint64     `gorm:"index"`
	ViewCount   uint64     `gorm:"default:0"`
	LikeCount   uint64     `gorm:"default:0"`
	ShareCount  uint64     `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Referent) TableName() string    { return "referents" }
func (r *Referent) GetSlug() string   { return r.Slug }
func (r *Referent) SetSlug(sl string) { r.Slug = sl }

type Course struct {
	ID          uint64     `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null"`
	Description string     `gorm:"type:text"`
	Level       string     `gorm:"size:32;default:'beginner'"`
	Provider    string     `gorm:"size:128"`
	URL         string     `gorm:"size:512"`
	Language    string     `gorm:"size:16;default:'es'"`
	Price       string     `gorm:"size:32"`
	IsFree      bool       `gorm:"default:false"`
	Tags        StringList `gorm:"type:json"`
	Status      string     `gorm:"size:32;index;default:'approved'"`
	ProposalID  *uint64    `gorm:"index"`
	CreatedBy   uint64     `gorm:"index"`
	ViewCount   uint64     `gorm:"default:0"`
	LikeCount   uint64     `gorm:"default:0"`
	ShareCount  uint64     `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Course) TableName() string    { return "courses" }
func (c *Course) GetSlug() string   { return c.Slug }
func (c *Course) SetSlug(sl string) { c.Slug = sl }

type BlogPost struct {
	ID            uint64     `gorm:"primaryKey"`
	Title         string     `gorm:"size:255;not null"`
	Slug          string     `gorm:"size:255;uniqueIndex;not null"`
	Content       string     `gorm:"type:text"`
	Excerpt       string     `gorm:"size:512"`
	CoverImageURL string     `gorm:"size:512"`
	AuthorName    string     `gorm:"size:128"`
	Tags          StringList `gorm:"type:json"`
	ReadingTime   int        `gorm:"default:0"`
	Status        string     `gorm:"size:32;index;default:'approved'"`
	ProposalID    *uint64    `gorm:"index"`
	CreatedBy     uint64     `gorm:"index"`
	ViewCount     uint64     `gorm:"default:0"`
	LikeCount     uint64     `gorm:"default:0"`
	ShareCount    uint64     `gorm:"default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (BlogPost) TableName() string    { return "blog_posts" }
func (b *BlogPost) GetSlug() string   { return b.Slug }
func (b *BlogPost) SetSlug(sl string) { b.Slug = sl }

type Job struct {
	ID          uint64     `gorm:"primaryKey"`
	Title       string     `gorm:"size:255;not null"`
	Slug        string     `gorm:"size:255;uniqueIndex;not null"`
	Company     string     `gorm:"size:128"`
	Description string     `gorm:"type:text"`
	Location    string     `gorm:"size:255"`
	JobType     string     `gorm:"size:32;default:'full-time'"`
	Remote      bool       `gorm:"default:false"`
	SalaryRange string     `gorm:"size:64"`
	ApplyURL    string     `gorm:"size:512"`
	Tags        StringList `gorm:"type:json"`
	Status      string     `gorm:"size:32;index;default:'published'"`
	ProposalID  *uint64    `gorm:"index"`
	CreatedBy   uint64     `gorm:"index"`
	ViewCount   uint64     `gorm:"default:0"`
	LikeCount   uint64     `gorm:"default:0"`
	ShareCount  uint64     `gorm:"default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Job) TableName() string    { return "jobs" }
func (j *Job) GetSlug() string   { return j.Slug }
func (j *Job) SetSlug(sl string) { j.Slug = sl }

// ValidContentType reports whether t is one of the accepted content types.
func ValidContentType(t string) bool {
	switch t {
	case TypeStartup, TypeEvent, TypeCommunity, TypeReferent, TypeCourse, TypeBlog, TypeJob:
		return true
	}
	return false
}
