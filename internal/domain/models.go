// Package domain defines the persistence models for providers, tasks, chat
// rooms, messages, reviews, and OTP codes. These types are mapped with GORM
// and form the core data layer of the marketplace backend.
//
// Task, Message, and Review are append-only collections: rows are created and
// read, never updated or deleted. ChatRoom and OtpCode additionally support
// the single conditional update that drives their state transition (admin
// close, single-use consume).
package domain

import "time"

// Provider status values. Only Active providers participate in matching.
const (
	ProviderActive  = "ACTIVE"
	ProviderPending = "PENDING"
	ProviderBlocked = "BLOCKED"
)

// ChatRoom status values. EXPIRED is never stored: natural expiry is a
// derived state computed from ExpiresAt on every read. CLOSED is a terminal
// administrative override.
const (
	RoomActive = "ACTIVE"
	RoomClosed = "CLOSED"
)

// Message / review participant roles.
const (
	SenderReceiver = "receiver"
	SenderProvider = "provider"
)

// Provider is a registered service provider. The canonical phone number
// doubles as the provider's public identifier. Categories and Areas hold
// comma-separated, title-cased values; matching is exact set membership.
type Provider struct {
	ID         string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name       string    `json:"name"       gorm:"type:varchar(120);not null"`
	Phone      string    `json:"phone"      gorm:"type:varchar(20);not null;uniqueIndex:ux_provider_phone"`
	Categories string    `json:"categories" gorm:"type:text;not null"`
	Areas      string    `json:"areas"      gorm:"type:text;not null"`
	Status     string    `json:"status"     gorm:"type:varchar(16);not null;default:'ACTIVE';index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for Provider.
func (Provider) TableName() string { return "providers" }

// Receiver is a registered service requester. Kept separate from Provider:
// the two registries have different ownership and the same phone may appear
// in both roles.
type Receiver struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	Name      string    `json:"name"       gorm:"type:varchar(120);not null"`
	Phone     string    `json:"phone"      gorm:"type:varchar(20);not null;uniqueIndex:ux_receiver_phone"`
	Area      string    `json:"area"       gorm:"type:varchar(120)"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for Receiver.
func (Receiver) TableName() string { return "receivers" }

// Task is one service request submitted by a receiver. Immutable once
// created; retained indefinitely for analytics. Response bookkeeping lives
// in TaskNotify rows, not here.
type Task struct {
	ID            string    `json:"taskId"        gorm:"type:char(36);primaryKey"`
	ReceiverPhone string    `json:"receiverPhone" gorm:"type:varchar(20);not null;index"`
	Category      string    `json:"category"      gorm:"type:varchar(120);not null"`
	Area          string    `json:"area"          gorm:"type:varchar(120);not null"`
	Details       string    `json:"details"       gorm:"type:text"`
	NeededBy      string    `json:"neededBy"      gorm:"type:varchar(120)"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName returns the database table name for Task.
func (Task) TableName() string { return "tasks" }

// TaskNotify records one dispatch attempt (successful or not) of a new-task
// notification to a provider. It is the bookkeeping behind "tasks without a
// response" reporting and the admin response counters.
type TaskNotify struct {
	ID            string    `json:"id"            gorm:"type:char(36);primaryKey"`
	TaskID        string    `json:"taskId"        gorm:"type:char(36);not null;index:idx_task_notifies"`
	ProviderPhone string    `json:"providerPhone" gorm:"type:varchar(20);not null"`
	Delivered     bool      `json:"delivered"     gorm:"not null"`
	Error         string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt"`
}

// TableName returns the database table name for TaskNotify.
func (TaskNotify) TableName() string { return "task_notifies" }

// OtpCode is a one-time password issued to a phone number. Lifecycle:
// created on send, consumed (ConsumedAt set) on first successful verify.
// Multiple unconsumed codes per phone may coexist; verification matches any
// unconsumed, unexpired record.
type OtpCode struct {
	ID         string     `json:"-"          gorm:"type:char(36);primaryKey"`
	Phone      string     `json:"phone"      gorm:"type:varchar(20);not null;index:idx_otp_phone"`
	Code       string     `json:"-"          gorm:"type:varchar(8);not null"`
	ConsumedAt *time.Time `json:"-"          gorm:"index"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  time.Time  `json:"expires_at" gorm:"not null;index"`
}

// TableName returns the database table name for OtpCode.
func (OtpCode) TableName() string { return "otp_codes" }

// ChatRoom is a time-boxed two-party messaging session scoped to one
// (task, provider) pair. The ID is the deterministic concatenation
// "<taskID>-<providerPhone>", which is what makes room opening idempotent:
// a second open for the same pair collides on the primary key and resolves
// to the existing row.
//
// ExpiresAt = CreatedAt + TTL, fixed at creation, never extended.
type ChatRoom struct {
	ID            string    `json:"roomId"        gorm:"type:varchar(64);primaryKey"`
	TaskID        string    `json:"taskId"        gorm:"type:char(36);not null;index"`
	ReceiverPhone string    `json:"receiverPhone" gorm:"type:varchar(20);not null"`
	ProviderPhone string    `json:"providerPhone" gorm:"type:varchar(20);not null"`
	Status        string    `json:"status"        gorm:"type:varchar(16);not null;default:'ACTIVE'"`
	CreatedAt     time.Time `json:"createdAt"`
	ExpiresAt     time.Time `json:"expiresAt"     gorm:"not null"`
}

// TableName returns the database table name for ChatRoom.
func (ChatRoom) TableName() string { return "chat_rooms" }

// Message is a single utterance within a chat room, authored by either the
// "receiver" or the "provider". Append-only; ordered by CreatedAt ascending.
type Message struct {
	ID        string    `json:"id"        gorm:"type:char(36);primaryKey"`
	RoomID    string    `json:"roomId"    gorm:"type:varchar(64);not null;index:idx_room_msgs,priority:1"`
	Sender    string    `json:"sender"    gorm:"type:varchar(16);not null;check:sender IN ('receiver','provider')"`
	Body      string    `json:"message"   gorm:"type:text;not null"`
	CreatedAt time.Time `json:"timestamp" gorm:"index:idx_room_msgs,priority:2"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Review is a post-chat rating left by one of the room's two participants.
// At most one review per (room, reviewer) pair, enforced by the unique index;
// an insert racing the existence check loses to the constraint, not to luck.
type Review struct {
	ID            string    `json:"-"             gorm:"type:char(36);primaryKey"`
	RoomID        string    `json:"roomId"        gorm:"type:varchar(64);not null;index;uniqueIndex:ux_review_room_reviewer"`
	ReviewerPhone string    `json:"reviewerPhone" gorm:"type:varchar(20);not null;uniqueIndex:ux_review_room_reviewer"`
	ReviewerRole  string    `json:"reviewerRole"  gorm:"type:varchar(16);not null;check:reviewer_role IN ('receiver','provider')"`
	Rating        int       `json:"rating"        gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Text          string    `json:"reviewText"    gorm:"type:text"`
	CreatedAt     time.Time `json:"timestamp"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// TaskReceipt records the outcome of a previously processed task-create
// request, keyed by (phone, key). It enables safe retries: the original
// taskId is returned without creating a second task.
type TaskReceipt struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Phone     string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_receipt_phone_key,priority:1"`
	Key       string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_receipt_phone_key,priority:2"`
	TaskID    string    `gorm:"type:char(36);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

// TableName returns the database table name for TaskReceipt.
func (TaskReceipt) TableName() string { return "task_receipts" }
