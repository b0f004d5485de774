package entities

import "fmt"

// ArticleKind describes why an article is being delivered.
// It selects both the delivery rules and the message header.
type ArticleKind string

const (
	ArticleKindWelcome ArticleKind = "welcome" // first article after /start
	ArticleKindRandom  ArticleKind = "random"  // /random
	ArticleKindDaily   ArticleKind = "daily"   // scheduled broadcast
)

// DeliveryVariant is the delivery rule set.
type DeliveryVariant int

const (
	VariantOnDemand DeliveryVariant = iota
	VariantScheduled
)

// Variant maps the article kind onto its delivery rule set.
// Only scheduled deliveries are limited to one per day.
func (k ArticleKind) Variant() DeliveryVariant {
	if k == ArticleKindDaily {
		return VariantScheduled
	}
	return VariantOnDemand
}

// ArticlePayload is handed to the notifier to render and send.
type ArticlePayload struct {
	Kind    ArticleKind
	Article Article
}

// DeliveryStatus is the outcome of a single delivery attempt.
type DeliveryStatus int

const (
	StatusDelivered DeliveryStatus = iota
	StatusSkippedAlreadySent
	StatusSendFailed
	StatusFailed
)

func (s DeliveryStatus) String() string {
	switch s {
	case StatusDelivered:
		return "delivered"
	case StatusSkippedAlreadySent:
		return "skipped_already_sent"
	case StatusSendFailed:
		return "send_failed"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// DeliveryResult reports what happened to one delivery.
type DeliveryResult struct {
	Status   DeliveryStatus
	Article  Article
	Recorded bool  // a new SentArticle row was written
	Err      error // send or storage error, if any
}
