package managers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"gamereview/internal/schemas"
	"gamereview/internal/utils"
	"gamereview/internal/validators"
)

var (
	ErrEmailTaken         = errors.New("email is already taken")
	ErrEmailUnreachable   = errors.New("email is not deliverable")
	ErrInvalidToken       = errors.New("invalid activation token")
	ErrAlreadyActivated   = errors.New("reviewer is already activated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotActivated       = errors.New("reviewer is not activated")
	ErrReviewerNotFound   = errors.New("reviewer not found")
)

const uniqueViolation = "23505"

// AccountMgr covers the lifecycle of a reviewer account and the reviews it posts.
type AccountMgr interface {
	RegisterReviewer(ctx context.Context, nickName, email, password string) (*schemas.Reviewer, error)
	ActivateReviewer(ctx context.Context, token string) (*schemas.Reviewer, error)
	ResendActivation(ctx context.Context, email string) error
	AuthenticateReviewer(ctx context.Context, email, password string) (*schemas.Reviewer, error)
	ChangePassword(ctx context.Context, reviewerId interface{}, oldPassword, newPassword string) error
	PostReview(ctx context.Context, reviewerId interface{}, console string, rating int, content string) (*schemas.Review, error)
}

// AccountManager implements AccountMgr on top of the reviewer and review repositories.
// Every write runs in its own transaction.
type AccountManager struct {
	DatabaseManager DatabaseMgr
	MailManager     MailMgr
	Validator       *validators.Validator
	Clock           schemas.Clock
}

func NewAccountManager(databaseManager DatabaseMgr, mailManager MailMgr) AccountMgr {
	return &AccountManager{
		DatabaseManager: databaseManager,
		MailManager:     mailManager,
		Validator:       validators.GetValidator(),
		Clock:           time.Now,
	}
}

// RegisterReviewer creates a not yet activated reviewer and mails them their activation token.
// Nothing is stored if the mail cannot be sent.
func (am *AccountManager) RegisterReviewer(ctx context.Context, nickName, email, password string) (_ *schemas.Reviewer, err error) {
	ctx = utils.WithTraceId(ctx)

	request := &schemas.RegistrationRequest{NickName: nickName, Email: email, Password: password}
	if err := am.validateStruct(request); err != nil {
		return nil, err
	}

	if !am.Validator.VerifyEmail(request.Email) {
		utils.LogMessageWithFields(ctx, "info", "Email is not deliverable")
		return nil, ErrEmailUnreachable
	}

	hash, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, err
	}
	token, err := utils.GenerateActivationToken()
	if err != nil {
		return nil, err
	}

	reviewer, err := schemas.NewReviewer(uuid.New(), &token, request.NickName, request.Email, hash)
	if err != nil {
		return nil, err
	}

	tx, transactionCtx, cancel, err := utils.BeginTransaction(ctx, am.DatabaseManager.GetPool())
	if err != nil {
		return nil, err
	}
	defer func() { utils.RollbackTransaction(ctx, tx, cancel, err) }()

	existing, err := schemas.GetReviewerByReviewerEmail(transactionCtx, tx, reviewer.ReviewerEmail())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	if err = reviewer.Insert(transactionCtx, tx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err = am.MailManager.SendActivationMail(reviewer.ReviewerEmail(), reviewer.ReviewerNickName(), token, utils.ExtractServiceName()); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error sending activation mail", err)
		return nil, err
	}

	if err = utils.CommitTransaction(transactionCtx, tx); err != nil {
		return nil, err
	}

	utils.LogMessageWithFields(ctx, "info", "Registered reviewer "+reviewer.ReviewerId().String())
	return reviewer, nil
}

// ActivateReviewer clears the activation token of the reviewer holding it.
func (am *AccountManager) ActivateReviewer(ctx context.Context, token string) (_ *schemas.Reviewer, err error) {
	ctx = utils.WithTraceId(ctx)

	tx, transactionCtx, cancel, err := utils.BeginTransaction(ctx, am.DatabaseManager.GetPool())
	if err != nil {
		return nil, err
	}
	defer func() { utils.RollbackTransaction(ctx, tx, cancel, err) }()

	reviewer, err := schemas.GetReviewerByReviewerActivationToken(transactionCtx, tx, token)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, ErrInvalidToken
	}

	if err = reviewer.SetReviewerActivationToken(nil); err != nil {
		return nil, err
	}
	if err = reviewer.Update(transactionCtx, tx); err != nil {
		return nil, err
	}

	if err = utils.CommitTransaction(transactionCtx, tx); err != nil {
		return nil, err
	}

	// the account is active either way
	if mailErr := am.MailManager.SendConfirmationMail(reviewer.ReviewerEmail(), reviewer.ReviewerNickName(), utils.ExtractServiceName()); mailErr != nil {
		utils.LogMessageWithFieldsAndError(ctx, "warn", "Error sending confirmation mail", mailErr)
	}

	utils.LogMessageWithFields(ctx, "info", "Activated reviewer "+reviewer.ReviewerId().String())
	return reviewer, nil
}

// ResendActivation replaces the activation token of a not yet activated reviewer and mails the new one.
func (am *AccountManager) ResendActivation(ctx context.Context, email string) (err error) {
	ctx = utils.WithTraceId(ctx)

	tx, transactionCtx, cancel, err := utils.BeginTransaction(ctx, am.DatabaseManager.GetPool())
	if err != nil {
		return err
	}
	defer func() { utils.RollbackTransaction(ctx, tx, cancel, err) }()

	reviewer, err := schemas.GetReviewerByReviewerEmail(transactionCtx, tx, email)
	if err != nil {
		return err
	}
	if reviewer == nil {
		return ErrReviewerNotFound
	}
	if reviewer.IsActivated() {
		return ErrAlreadyActivated
	}

	token, err := utils.GenerateActivationToken()
	if err != nil {
		return err
	}
	if err = reviewer.SetReviewerActivationToken(&token); err != nil {
		return err
	}
	if err = reviewer.Update(transactionCtx, tx); err != nil {
		return err
	}

	if err = am.MailManager.SendActivationMail(reviewer.ReviewerEmail(), reviewer.ReviewerNickName(), token, utils.ExtractServiceName()); err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error sending activation mail", err)
		return err
	}

	return utils.CommitTransaction(transactionCtx, tx)
}

// AuthenticateReviewer returns the activated reviewer with the given email and password.
// An unknown email and a wrong password both yield ErrInvalidCredentials; ErrNotActivated is only returned once the
// password matched.
func (am *AccountManager) AuthenticateReviewer(ctx context.Context, email, password string) (*schemas.Reviewer, error) {
	ctx = utils.WithTraceId(ctx)

	request := &schemas.LoginRequest{Email: email, Password: password}
	if err := am.validateStruct(request); err != nil {
		return nil, err
	}

	reviewer, err := schemas.GetReviewerByReviewerEmail(ctx, am.DatabaseManager.GetPool(), request.Email)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, ErrInvalidCredentials
	}

	ok, err := utils.VerifyPassword(reviewer.ReviewerHash(), request.Password)
	if err != nil {
		utils.LogMessageWithFieldsAndError(ctx, "error", "Error verifying password", err)
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	// only reported to callers who know the password
	if !reviewer.IsActivated() {
		return nil, ErrNotActivated
	}

	return reviewer, nil
}

// ChangePassword replaces the reviewer's hash after checking oldPassword against it.
func (am *AccountManager) ChangePassword(ctx context.Context, reviewerId interface{}, oldPassword, newPassword string) (err error) {
	ctx = utils.WithTraceId(ctx)

	request := &schemas.ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := am.validateStruct(request); err != nil {
		return err
	}

	tx, transactionCtx, cancel, err := utils.BeginTransaction(ctx, am.DatabaseManager.GetPool())
	if err != nil {
		return err
	}
	defer func() { utils.RollbackTransaction(ctx, tx, cancel, err) }()

	reviewer, err := schemas.GetReviewerByReviewerId(transactionCtx, tx, reviewerId)
	if err != nil {
		return err
	}
	if reviewer == nil {
		return ErrReviewerNotFound
	}

	ok, err := utils.VerifyPassword(reviewer.ReviewerHash(), request.OldPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidCredentials
	}

	hash, err := utils.HashPassword(request.NewPassword)
	if err != nil {
		return err
	}
	if err = reviewer.SetReviewerHash(hash); err != nil {
		return err
	}
	if err = reviewer.Update(transactionCtx, tx); err != nil {
		return err
	}

	return utils.CommitTransaction(transactionCtx, tx)
}

// PostReview stores a new review dated now for an activated reviewer.
func (am *AccountManager) PostReview(ctx context.Context, reviewerId interface{}, console string, rating int, content string) (_ *schemas.Review, err error) {
	ctx = utils.WithTraceId(ctx)

	request := &schemas.CreateReviewRequest{Console: console, Rating: rating, Content: content}
	if err := am.validateStruct(request); err != nil {
		return nil, err
	}

	tx, transactionCtx, cancel, err := utils.BeginTransaction(ctx, am.DatabaseManager.GetPool())
	if err != nil {
		return nil, err
	}
	defer func() { utils.RollbackTransaction(ctx, tx, cancel, err) }()

	reviewer, err := schemas.GetReviewerByReviewerId(transactionCtx, tx, reviewerId)
	if err != nil {
		return nil, err
	}
	if reviewer == nil {
		return nil, ErrReviewerNotFound
	}
	if !reviewer.IsActivated() {
		return nil, ErrNotActivated
	}

	review, err := schemas.NewReviewWithClock(am.Clock, uuid.New(), reviewer.ReviewerId(), request.Console, nil, request.Rating, request.Content)
	if err != nil {
		return nil, err
	}
	if err = review.Insert(transactionCtx, tx); err != nil {
		return nil, err
	}

	if err = utils.CommitTransaction(transactionCtx, tx); err != nil {
		return nil, err
	}

	utils.LogMessageWithFields(ctx, "info", "Posted review "+review.ReviewId().String())
	return review, nil
}

func (am *AccountManager) validateStruct(request interface{}) error {
	if err := am.Validator.Validate.Struct(request); err != nil {
		return validators.InvalidArgument("%T is invalid: %v", request, err)
	}
	return nil
}
