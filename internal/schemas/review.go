package schemas

import (
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"gamereview/internal/validators"
)

const (
	MaxConsoleLength = 16
	MaxContentLength = 10000
	MinRating        = 0
	MaxRating        = 10
)

// Clock supplies the current time for reviews created without a date.
type Clock func() time.Time

// Review is one critique of a game on a console, written by exactly one Reviewer.
type Review struct {
	reviewId         uuid.UUID
	reviewReviewerId uuid.UUID
	reviewConsole    string
	reviewDate       time.Time
	reviewRating     int
	reviewContent    string

	clock Clock
}

// NewReview is NewReviewWithClock using the system clock.
func NewReview(reviewId, reviewReviewerId interface{}, console string, date interface{}, rating int, content string) (*Review, error) {
	return NewReviewWithClock(time.Now, reviewId, reviewReviewerId, console, date, rating, content)
}

// NewReviewWithClock validates every field in declaration order and returns the first error unchanged.
// A nil date is replaced by clock().
func NewReviewWithClock(clock Clock, reviewId, reviewReviewerId interface{}, console string, date interface{}, rating int, content string) (*Review, error) {
	if clock == nil {
		clock = time.Now
	}
	review := &Review{clock: clock}

	if err := review.SetReviewId(reviewId); err != nil {
		return nil, err
	}
	if err := review.SetReviewReviewerId(reviewReviewerId); err != nil {
		return nil, err
	}
	if err := review.SetReviewConsole(console); err != nil {
		return nil, err
	}
	if err := review.SetReviewDate(date); err != nil {
		return nil, err
	}
	if err := review.SetReviewRating(rating); err != nil {
		return nil, err
	}
	if err := review.SetReviewContent(content); err != nil {
		return nil, err
	}

	return review, nil
}

func (r *Review) ReviewId() uuid.UUID {
	return r.reviewId
}

func (r *Review) SetReviewId(reviewId interface{}) error {
	id, err := validators.ValidateUUID(reviewId)
	if err != nil {
		return err
	}

	r.reviewId = id
	return nil
}

func (r *Review) ReviewReviewerId() uuid.UUID {
	return r.reviewReviewerId
}

func (r *Review) SetReviewReviewerId(reviewerId interface{}) error {
	id, err := validators.ValidateUUID(reviewerId)
	if err != nil {
		return err
	}

	r.reviewReviewerId = id
	return nil
}

func (r *Review) ReviewConsole() string {
	return r.reviewConsole
}

func (r *Review) SetReviewConsole(console string) error {
	newConsole, err := validateConsole(console)
	if err != nil {
		return err
	}

	r.reviewConsole = newConsole
	return nil
}

func validateConsole(console string) (string, error) {
	console = validators.SanitizeString(console)
	if console == "" {
		return "", validators.InvalidArgument("review console is empty or insecure")
	}
	if utf8.RuneCountInString(console) > MaxConsoleLength {
		return "", validators.OutOfRange("review console too large")
	}
	return console, nil
}

func (r *Review) ReviewDate() time.Time {
	return r.reviewDate
}

// SetReviewDate accepts anything validators.ValidateDateTime does. nil means now.
func (r *Review) SetReviewDate(date interface{}) error {
	if date == nil {
		r.reviewDate = r.now()
		return nil
	}
	if t, ok := date.(*time.Time); ok && t == nil {
		r.reviewDate = r.now()
		return nil
	}

	newDate, err := validators.ValidateDateTime(date)
	if err != nil {
		return err
	}

	r.reviewDate = newDate
	return nil
}

func (r *Review) now() time.Time {
	clock := r.clock
	if clock == nil {
		clock = time.Now
	}
	return clock().UTC().Truncate(time.Microsecond)
}

func (r *Review) ReviewRating() int {
	return r.reviewRating
}

// SetReviewRating accepts ratings from 0 to 10 inclusive.
func (r *Review) SetReviewRating(rating int) error {
	if err := validateRating(rating); err != nil {
		return err
	}

	r.reviewRating = rating
	return nil
}

func validateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return validators.OutOfRange("review rating %d is not between %d and %d", rating, MinRating, MaxRating)
	}
	return nil
}

func (r *Review) ReviewContent() string {
	return r.reviewContent
}

func (r *Review) SetReviewContent(content string) error {
	content = validators.SanitizeString(content)
	if content == "" {
		return validators.InvalidArgument("review content is empty or insecure")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return validators.OutOfRange("review content too large")
	}

	r.reviewContent = content
	return nil
}

func (r *Review) validate() error {
	_, err := NewReviewWithClock(r.clock, r.reviewId, r.reviewReviewerId, r.reviewConsole, r.reviewDate, r.reviewRating, r.reviewContent)
	return err
}
