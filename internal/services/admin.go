package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/keyvez/vaan-backend/internal/logger"
	"github.com/keyvez/vaan-backend/internal/repos"
	"github.com/keyvez/vaan-backend/internal/types"
)

var ErrUserNotFound = errors.New("user not found")

const (
	recentSignupWindow = 7 * 24 * time.Hour
	activeUserWindow   = 30 * 24 * time.Hour
)

type UserStats struct {
	Total         int64 `json:"total"`
	RecentSignups int64 `json:"recent_signups"`
	ActiveUsers   int64 `json:"active_users"`
}

type ContentStats struct {
	Lexemes        int64 `json:"lexemes"`
	BabyNames      int64 `json:"baby_names"`
	Videos         int64 `json:"videos"`
	BlogPosts      int64 `json:"blog_posts"`
	PublishedBlogs int64 `json:"published_blogs"`
	DraftBlogs     int64 `json:"draft_blogs"`
	News           int64 `json:"news"`
}

type StatsOverview struct {
	Users   UserStats    `json:"users"`
	Content ContentStats `json:"content"`
}

type UserPage struct {
	Users []*types.User `json:"users"`
	Total int64         `json:"total"`
}

type AuditPage struct {
	Entries []*types.AuditLog `json:"entries"`
	Total   int64             `json:"total"`
}

type AdminService interface {
	CheckAdmin(ctx context.Context, userID string) (bool, error)
	GrantAdmin(ctx context.Context, actorID, targetID string, admin bool) error
	ListUsers(ctx context.Context, search string, limit, offset int) (*UserPage, error)
	GetStatsOverview(ctx context.Context) (*StatsOverview, error)
	RecordAction(ctx context.Context, actorID, action, resourceType, resourceID string, metadata any)
	ListAuditLog(ctx context.Context, limit, offset int) (*AuditPage, error)
}

type adminService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	auditRepo  repos.AuditLogRepo
	lexemeRepo repos.LexemeRepo
	nameRepo   repos.BabyNameRepo
	videoRepo  repos.VideoRepo
	blogRepo   repos.BlogPostRepo
	newsRepo   repos.NewsRepo
	now        func() time.Time
}

func NewAdminService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	auditRepo repos.AuditLogRepo,
	lexemeRepo repos.LexemeRepo,
	nameRepo repos.BabyNameRepo,
	videoRepo repos.VideoRepo,
	blogRepo repos.BlogPostRepo,
	newsRepo repos.NewsRepo,
) AdminService {
	serviceLog := log.With("service", "AdminService")
	return &adminService{
		db:         db,
		log:        serviceLog,
		userRepo:   userRepo,
		auditRepo:  auditRepo,
		lexemeRepo: lexemeRepo,
		nameRepo:   nameRepo,
		videoRepo:  videoRepo,
		blogRepo:   blogRepo,
		newsRepo:   newsRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (as *adminService) CheckAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return false, fmt.Errorf("load user: %w", err)
	}
	if user == nil {
		return false, nil
	}
	return user.IsAdmin, nil
}

func (as *adminService) GrantAdmin(ctx context.Context, actorID, targetID string, admin bool) error {
	err := as.userRepo.SetAdmin(ctx, nil, targetID, admin)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}

	action := "grant_admin"
	if !admin {
		action = "revoke_admin"
	}
	as.RecordAction(ctx, actorID, action, "user", targetID, nil)
	return nil
}

func (as *adminService) ListUsers(ctx context.Context, search string, limit, offset int) (*UserPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, total, err := as.userRepo.List(ctx, nil, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &UserPage{Users: users, Total: total}, nil
}

func (as *adminService) GetStatsOverview(ctx context.Context) (*StatsOverview, error) {
	now := as.now()

	overview := &StatsOverview{}
	counts := []struct {
		dest  *int64
		label string
		load  func() (int64, error)
	}{
		{&overview.Users.Total, "users", func() (int64, error) { return as.userRepo.Count(ctx, nil) }},
		{&overview.Users.RecentSignups, "recent signups", func() (int64, error) {
			return as.userRepo.CountCreatedSince(ctx, nil, now.Add(-recentSignupWindow))
		}},
		{&overview.Users.ActiveUsers, "active users", func() (int64, error) {
			return as.userRepo.CountActiveSince(ctx, nil, now.Add(-activeUserWindow))
		}},
		{&overview.Content.Lexemes, "lexemes", func() (int64, error) { return as.lexemeRepo.Count(ctx, nil) }},
		{&overview.Content.BabyNames, "baby names", func() (int64, error) { return as.nameRepo.Count(ctx, nil) }},
		{&overview.Content.Videos, "videos", func() (int64, error) { return as.videoRepo.Count(ctx, nil) }},
		{&overview.Content.BlogPosts, "blog posts", func() (int64, error) { return as.blogRepo.Count(ctx, nil) }},
		{&overview.Content.PublishedBlogs, "published blogs", func() (int64, error) {
			return as.blogRepo.CountByStatus(ctx, nil, types.BlogStatusPublished)
		}},
		{&overview.Content.DraftBlogs, "draft blogs", func() (int64, error) {
			return as.blogRepo.CountByStatus(ctx, nil, types.BlogStatusDraft)
		}},
		{&overview.Content.News, "news", func() (int64, error) { return as.newsRepo.Count(ctx, nil) }},
	}
	for _, c := range counts {
		n, err := c.load()
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", c.label, err)
		}
		*c.dest = n
	}
	return overview, nil
}

// RecordAction appends an audit row. Audit failures are logged and swallowed
// so they never fail the admin call that triggered them.
func (as *adminService) RecordAction(ctx context.Context, actorID, action, resourceType, resourceID string, metadata any) {
	entry := &types.AuditLog{
		ActorID:      actorID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			as.log.Warn("Failed to marshal audit metadata", "action", action, "error", err)
		} else {
			entry.Metadata = raw
		}
	}
	if err := as.auditRepo.Append(ctx, nil, entry); err != nil {
		as.log.Error("Failed to append audit log entry", "action", action, "actor_id", actorID, "error", err)
	}
}

func (as *adminService) ListAuditLog(ctx context.Context, limit, offset int) (*AuditPage, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	entries, total, err := as.auditRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit log: %w", err)
	}
	return &AuditPage{Entries: entries, Total: total}, nil
}
