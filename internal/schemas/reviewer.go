package schemas

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"gamereview/internal/utils"
	"gamereview/internal/validators"
)

const (
	ActivationTokenLength = 32
	MaxNickNameLength     = 32
	MaxEmailLength        = 128
	HashLength            = 97
	HashAlgorithm         = "argon2i"
)

// Reviewer is an account that writes reviews.
// A Reviewer only exists with all five fields validated; use NewReviewer or one of the lookups to obtain one.
type Reviewer struct {
	reviewerId              uuid.UUID
	reviewerActivationToken *string
	reviewerNickName        string
	reviewerEmail           string
	reviewerHash            string
}

// NewReviewer validates every field in declaration order and returns the first error unchanged.
// A nil activationToken marks an activated account.
func NewReviewer(reviewerId interface{}, activationToken *string, nickName, email, hash string) (*Reviewer, error) {
	reviewer := &Reviewer{}

	if err := reviewer.SetReviewerId(reviewerId); err != nil {
		return nil, err
	}
	if err := reviewer.SetReviewerActivationToken(activationToken); err != nil {
		return nil, err
	}
	if err := reviewer.SetReviewerNickName(nickName); err != nil {
		return nil, err
	}
	if err := reviewer.SetReviewerEmail(email); err != nil {
		return nil, err
	}
	if err := reviewer.SetReviewerHash(hash); err != nil {
		return nil, err
	}

	return reviewer, nil
}

func (r *Reviewer) ReviewerId() uuid.UUID {
	return r.reviewerId
}

// SetReviewerId accepts anything validators.ValidateUUID does.
func (r *Reviewer) SetReviewerId(reviewerId interface{}) error {
	id, err := validators.ValidateUUID(reviewerId)
	if err != nil {
		return err
	}

	r.reviewerId = id
	return nil
}

// ReviewerActivationToken returns a copy of the token, or nil once the account is activated.
func (r *Reviewer) ReviewerActivationToken() *string {
	if r.reviewerActivationToken == nil {
		return nil
	}
	token := *r.reviewerActivationToken
	return &token
}

// IsActivated reports whether the reviewer has no pending activation token.
func (r *Reviewer) IsActivated() bool {
	return r.reviewerActivationToken == nil
}

// SetReviewerActivationToken stores the trimmed, lower-cased token, or clears it when token is nil.
// Tokens must be exactly 32 hexadecimal characters.
func (r *Reviewer) SetReviewerActivationToken(token *string) error {
	if token == nil {
		r.reviewerActivationToken = nil
		return nil
	}

	newToken, err := validateActivationToken(*token)
	if err != nil {
		return err
	}

	r.reviewerActivationToken = &newToken
	return nil
}

func validateActivationToken(token string) (string, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if !validators.IsHex(token) {
		return "", validators.OutOfRange("reviewer activation token must be hexadecimal")
	}
	if len(token) != ActivationTokenLength {
		return "", validators.OutOfRange("reviewer activation token must be %d characters", ActivationTokenLength)
	}
	return token, nil
}

func (r *Reviewer) ReviewerNickName() string {
	return r.reviewerNickName
}

func (r *Reviewer) SetReviewerNickName(nickName string) error {
	newNickName, err := validateNickName(nickName)
	if err != nil {
		return err
	}

	r.reviewerNickName = newNickName
	return nil
}

func validateNickName(nickName string) (string, error) {
	nickName = validators.SanitizeString(nickName)
	if nickName == "" {
		return "", validators.InvalidArgument("reviewer nick name is empty or insecure")
	}
	if utf8.RuneCountInString(nickName) > MaxNickNameLength {
		return "", validators.OutOfRange("reviewer nick name is too large")
	}
	return nickName, nil
}

func (r *Reviewer) ReviewerEmail() string {
	return r.reviewerEmail
}

func (r *Reviewer) SetReviewerEmail(email string) error {
	newEmail, err := validateReviewerEmail(email)
	if err != nil {
		return err
	}

	r.reviewerEmail = newEmail
	return nil
}

func validateReviewerEmail(email string) (string, error) {
	email, err := validators.ValidateEmail(email)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(email) > MaxEmailLength {
		return "", validators.OutOfRange("reviewer email is too large")
	}
	return email, nil
}

func (r *Reviewer) ReviewerHash() string {
	return r.reviewerHash
}

// SetReviewerHash accepts only the 97 character argon2i hashes produced by utils.HashPassword.
func (r *Reviewer) SetReviewerHash(hash string) error {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return validators.InvalidArgument("reviewer password hash empty or insecure")
	}

	if utils.PasswordAlgorithm(hash) != HashAlgorithm {
		return validators.InvalidArgument("reviewer hash is not a valid hash")
	}

	if len(hash) != HashLength {
		return validators.OutOfRange("reviewer hash must be %d characters", HashLength)
	}

	r.reviewerHash = hash
	return nil
}

// validate re-runs every field rule on the current values.
func (r *Reviewer) validate() error {
	_, err := NewReviewer(r.reviewerId, r.reviewerActivationToken, r.reviewerNickName, r.reviewerEmail, r.reviewerHash)
	return err
}
