package moderation

import (
	"strconv"
	"strings"
	"time"

	"github.com/defi-mexico/platform-backend/src/api/types"
)

// Event formats recognized by normalizeEventType.
const (
	EventOnline     = "online"
	EventHybrid     = "hibrido"
	EventPresencial = "presencial"
)

// Spanish category labels mapped to referent track codes. Lookup is done
// on the lowercased, diacritic-stripped input; anything else is "other".
var referentTracks = map[string]string{
	"programadores": "developer",
	"abogados":      "lawyer",
	"financieros":   "financial",
	"disenadores":   "designer",
	"marketers":     "marketer",
	"otros":         "other",
}

// Transform maps a proposal payload into a schema-complete record for the
// content type's target table. It performs no I/O. Missing fields default;
// only a missing canonical name/title field is an error.
func Transform(contentType string, data map[string]interface{}, proposalID, createdBy uint64) (types.PublishedRecord, error) {
	switch contentType {
	case types.TypeStartup:
		return transformStartup(data, proposalID, createdBy)
	case types.TypeEvent:
		return transformEvent(data, proposalID, createdBy)
	case types.TypeCommunity:
		return transformCommunity(data, proposalID, createdBy)
	case types.TypeReferent:
		return transformReferent(data, proposalID, createdBy)
	case types.TypeCourse:
		return transformCourse(data, proposalID, createdBy)
	case types.TypeBlog:
		return transformBlog(data, proposalID, createdBy)
	case types.TypeJob:
		return transformJob(data, proposalID, createdBy)
	}
	return nil, &InvalidPayloadError{ContentType: contentType, Field: "content_type"}
}

func transformStartup(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	name := str(d, "name")
	if name == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeStartup, Field: "name"}
	}
	return &types.Startup{
		Name:        name,
		Slug:        Slugify(name),
		Description: str(d, "description"),
		Website:     str(d, "website"),
		LogoURL:     str(d, "logo_url"),
		Country:     strOr(d, "country", "Mexico"),
		Category:    str(d, "category"),
		Tags:        tags(d, "tags"),
		IsFeatured:  boolOr(d, "is_featured", false),
		FoundedYear: intOr(d, "founded_year", 0),
		TwitterURL:  str(d, "twitter_url"),
		Status:      "published",
		ProposalID:  &pid,
		CreatedBy:   uid,
	}, nil
}

func transformEvent(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	title := str(d, "title")
	if title == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeEvent, Field: "title"}
	}
	// The proposal form collects a free-text format; the published schema
	// wants exactly one of presencial/online/hibrido.
	format := str(d, "event_type")
	if format == "" {
		format = str(d, "format")
	}
	return &types.Event{
		Title:           title,
		Slug:            Slugify(title),
		Description:     str(d, "description"),
		EventType:       normalizeEventType(format),
		Location:        str(d, "location"),
		StartDate:       timePtr(d, "start_date"),
		EndDate:         timePtr(d, "end_date"),
		RegistrationURL: str(d, "registration_url"),
		Tags:            tags(d, "tags"),
		IsFeatured:      boolOr(d, "is_featured", false),
		Status:          "published",
		ProposalID:      &pid,
		CreatedBy:       uid,
	}, nil
}

func transformCommunity(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	name := str(d, "name")
	if name == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeCommunity, Field: "name"}
	}
	// community_type is folded into tags rather than stored as a column.
	tg := tags(d, "tags")
	if ct := str(d, "community_type"); ct != "" {
		tg = append(tg, ct)
	}
	return &types.Community{
		Name:        name,
		Slug:        Slugify(name),
		Description: str(d, "description"),
		Category:    strOr(d, "focus_area", "defi"),
		Tags:        tg,
		Website:     str(d, "website"),
		DiscordURL:  str(d, "discord_url"),
		TelegramURL: str(d, "telegram_url"),
		TwitterURL:  str(d, "twitter_url"),
		MemberCount: intOr(d, "member_count", 0),
		Country:     strOr(d, "country", "Mexico"),
		Status:      "published",
		ProposalID:  &pid,
		CreatedBy:   uid,
	}, nil
}

func transformReferent(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	name := str(d, "name")
	if name == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeReferent, Field: "name"}
	}
	category := str(d, "category")
	return &types.Referent{
		Name:        name,
		Slug:        Slugify(name),
		Bio:         str(d, "bio"),
		Track:       referentTrack(category),
		Category:    category,
		PhotoURL:    str(d, "photo_url"),
		TwitterURL:  str(d, "twitter_url"),
		LinkedinURL: str(d, "linkedin_url"),
		Country:     strOr(d, "country", "Mexico"),
		Tags:        tags(d, "tags"),
		Status:      "published",
		ProposalID:  &pid,
		CreatedBy:   uid,
	}, nil
}

func transformCourse(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	title := str(d, "title")
	if title == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeCourse, Field: "title"}
	}
	return &types.Course{
		Title:       title,
		Slug:        Slugify(title),
		Description: str(d, "description"),
		Level:       strOr(d, "level", "beginner"),
		Provider:    str(d, "provider"),
		URL:         str(d, "url"),
		Language:    strOr(d, "language", "es"),
		Price:       str(d, "price"),
		IsFree:      boolOr(d, "is_free", false),
		Tags:        tags(d, "tags"),
		Status:      "approved",
		ProposalID:  &pid,
		CreatedBy:   uid,
	}, nil
}

func transformBlog(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	title := str(d, "title")
	if title == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeBlog, Field: "title"}
	}
	return &types.BlogPost{
		Title:         title,
		Slug:          Slugify(title),
		Content:       str(d, "content"),
		Excerpt:       str(d, "excerpt"),
		CoverImageURL: str(d, "cover_image_url"),
		AuthorName:    str(d, "author_name"),
		Tags:          tags(d, "tags"),
		ReadingTime:   intOr(d, "reading_time", 0),
		Status:        "approved",
		ProposalID:    &pid,
		CreatedBy:     uid,
	}, nil
}

func transformJob(d map[string]interface{}, pid, uid uint64) (types.PublishedRecord, error) {
	title := str(d, "title")
	if title == "" {
		return nil, &InvalidPayloadError{ContentType: types.TypeJob, Field: "title"}
	}
	return &types.Job{
		Title:       title,
		Slug:        Slugify(title),
		Company:     str(d, "company"),
		Description: str(d, "description"),
		Location:    str(d, "location"),
		JobType:     strOr(d, "job_type", "full-time"),
		Remote:      boolOr(d, "remote", false),
		SalaryRange: str(d, "salary_range"),
		ApplyURL:    str(d, "apply_url"),
		Tags:        tags(d, "tags"),
		Status:      "published",
		ProposalID:  &pid,
		CreatedBy:   uid,
	}, nil
}

func normalizeEventType(format string) string {
	f := stripDiacritics(strings.ToLower(format))
	switch {
	case strings.Contains(f, "online"), strings.Contains(f, "virtual"):
		return EventOnline
	case strings.Contains(f, "hybrid"), strings.Contains(f, "hibrido"):
		return EventHybrid
	default:
		return EventPresencial
	}
}

func referentTrack(category string) string {
	key := stripDiacritics(strings.ToLower(strings.TrimSpace(category)))
	if track, ok := referentTracks[key]; ok {
		return track
	}
	return "other"
}

// JSON decoding hands us interface{} values; the helpers below default
// instead of failing on absent or oddly-typed fields.

func str(d map[string]interface{}, key string) string {
	if v, ok := d[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func strOr(d map[string]interface{}, key, def string) string {
	if s := str(d, key); s != "" {
		return s
	}
	return def
}

func boolOr(d map[string]interface{}, key string, def bool) bool {
	if v, ok := d[key].(bool); ok {
		return v
	}
	return def
}

func intOr(d map[string]interface{}, key string, def int) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func tags(d map[string]interface{}, key string) types.StringList {
	out := types.StringList{}
	switch v := d[key].(type) {
	case []interface{}:
		for _, t := range v {
			if s, ok := t.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case []string:
		for _, s := range v {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if strings.TrimSpace(s) != "" {
				out = append(out, strings.TrimSpace(s))
			}
		}
	}
	return out
}

func timePtr(d map[string]interface{}, key string) *time.Time {
	s := str(d, key)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
