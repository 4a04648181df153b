package domain

// UserRole represents the role a user has within the community.
type UserRole string

const (
	UserRoleResident UserRole = "RESIDENT"
	UserRoleStaff    UserRole = "STAFF"
	UserRoleAdmin    UserRole = "ADMIN"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleResident, UserRoleStaff, UserRoleAdmin:
		return true
	}
	return false
}

// UserStatus represents the registration state of a user account.
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusPending  UserStatus = "PENDING"
	UserStatusRejected UserStatus = "REJECTED"
	UserStatusInactive UserStatus = "INACTIVE"
)

func (s UserStatus) String() string { return string(s) }

func (s UserStatus) IsValid() bool {
	switch s {
	case UserStatusActive, UserStatusPending, UserStatusRejected, UserStatusInactive:
		return true
	}
	return false
}

// NewsStatus represents the publication state of a news item.
type NewsStatus string

const (
	NewsStatusDraft     NewsStatus = "DRAFT"
	NewsStatusPublished NewsStatus = "PUBLISHED"
	NewsStatusArchived  NewsStatus = "ARCHIVED"
)

func (s NewsStatus) String() string { return string(s) }

func (s NewsStatus) IsValid() bool {
	switch s {
	case NewsStatusDraft, NewsStatusPublished, NewsStatusArchived:
		return true
	}
	return false
}

// NoticeStatus represents the lifecycle state of a community notice.
type NoticeStatus string

const (
	NoticeStatusActive   NoticeStatus = "ACTIVE"
	NoticeStatusExpired  NoticeStatus = "EXPIRED"
	NoticeStatusArchived NoticeStatus = "ARCHIVED"
)

func (s NoticeStatus) String() string { return string(s) }

func (s NoticeStatus) IsValid() bool {
	switch s {
	case NoticeStatusActive, NoticeStatusExpired, NoticeStatusArchived:
		return true
	}
	return false
}

// NoticePriority represents the urgency of a notice. Values sort by Rank.
type NoticePriority string

const (
	NoticePriorityCritical NoticePriority = "critica"
	NoticePriorityHigh     NoticePriority = "alta"
	NoticePriorityMedium   NoticePriority = "media"
	NoticePriorityLow      NoticePriority = "baja"
)

func (p NoticePriority) String() string { return string(p) }

func (p NoticePriority) IsValid() bool {
	switch p {
	case NoticePriorityCritical, NoticePriorityHigh, NoticePriorityMedium, NoticePriorityLow:
		return true
	}
	return false
}

// Rank returns the sort weight of the priority; higher means more urgent.
// Unknown priorities rank lowest.
func (p NoticePriority) Rank() int {
	switch p {
	case NoticePriorityCritical:
		return 4
	case NoticePriorityHigh:
		return 3
	case NoticePriorityMedium:
		return 2
	case NoticePriorityLow:
		return 1
	}
	return 0
}

// NewsCategory classifies a news item for display and filtering.
type NewsCategory string

const (
	NewsCategoryGeneral     NewsCategory = "general"
	NewsCategoryEvents      NewsCategory = "eventos"
	NewsCategoryMaintenance NewsCategory = "mantenimiento"
	NewsCategoryCommunity   NewsCategory = "comunidad"
)

func (c NewsCategory) String() string { return string(c) }

func (c NewsCategory) IsValid() bool {
	switch c {
	case NewsCategoryGeneral, NewsCategoryEvents, NewsCategoryMaintenance, NewsCategoryCommunity:
		return true
	}
	return false
}
