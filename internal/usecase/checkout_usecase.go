package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ozgunabanoz/shopping-site-project/internal/domain/model"
	repo "github.com/ozgunabanoz/shopping-site-project/internal/repository"

	"github.com/shopspring/decimal"
)

// 決済プロバイダへ渡す1明細。金額は通貨の最小単位。
type PaymentLineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Currency    string
	Quantity    int64
}

type PaymentSession struct {
	ID  string
	URL string
}

// PaymentGateway は外部決済サービスとの境界。
// タイムアウトを含む呼び出し失敗はそのままerrorで返す（リトライしない）。
type PaymentGateway interface {
	CreateSession(ctx context.Context, items []PaymentLineItem, successURL string, cancelURL string) (PaymentSession, error)
}

// CheckoutUsecase はカートから合計を計算し、決済セッションを作り、
// 成功時に注文を確定してカートを空にする。
type CheckoutUsecase struct {
	tx           repo.TransactionManager
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	sessionRepo  repo.CheckoutSessionRepository
	userRepo     repo.UserRepository
	gateway      PaymentGateway
	currency     string
	baseURL      string
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	sessionRepo repo.CheckoutSessionRepository,
	userRepo repo.UserRepository,
	gateway PaymentGateway,
	currency string,
	baseURL string,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:           tx,
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		currency:     currency,
		baseURL:      baseURL,
	}
}

type CheckoutOutput struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// StartCheckout は決済セッションを作成する。
// カート時点のスナップショットをセッションに固定するため、後でカートが
// 変わっても注文合計はプロバイダへ送った合計と一致する。
func (u *CheckoutUsecase) StartCheckout(ctx context.Context, userID int64) (CheckoutOutput, error) {
	if userID <= 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if err == repo.ErrNotFound {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cartItems, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if len(cartItems) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	//カートを商品詳細で解決してスナップショットを作る
	lines := make([]model.CheckoutLine, 0, len(cartItems))
	payItems := make([]PaymentLineItem, 0, len(cartItems))
	total := decimal.Zero

	for _, ci := range cartItems {
		p, err := u.productRepo.FindByID(ctx, ci.ProductID)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lines = append(lines, model.CheckoutLine{
			ProductID:   p.ID,
			Title:       p.Title,
			Description: p.Description,
			ImageURL:    p.ImageURL,
			UnitPrice:   p.Price,
			Quantity:    ci.Quantity,
		})

		payItems = append(payItems, PaymentLineItem{
			Name:        p.Title,
			Description: p.Description,
			UnitAmount:  p.Price.Mul(decimal.NewFromInt(100)).IntPart(),
			Currency:    u.currency,
			Quantity:    ci.Quantity,
		})

		total = total.Add(p.Price.Mul(decimal.NewFromInt(ci.Quantity)))
	}

	if len(lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	successURL := u.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := u.baseURL + "/checkout/cancel?session_id={CHECKOUT_SESSION_ID}"

	//外部呼び出しが失敗したら何も永続化しない（カートもそのまま）
	sess, err := u.gateway.CreateSession(ctx, payItems, successURL, cancelURL)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadGateway, "payment service error")
	}

	snapshot, err := json.Marshal(lines)
	if err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := time.Now()
	if err := u.sessionRepo.Create(ctx, model.CheckoutSession{
		SessionID: sess.ID,
		UserID:    userID,
		Status:    model.CheckoutStatusPending,
		Total:     total,
		Snapshot:  string(snapshot),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return CheckoutOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return CheckoutOutput{SessionID: sess.ID, URL: sess.URL}, nil
}

// Createがunique制約で失敗した側の印。Postgresはunique違反でtxをabortする
// ので、同じtx内では読み直せない。rollback後に別txで既存の注文を返す。
var errOrderExists = errors.New("order already exists")

// CompleteCheckout は決済成功後の確定処理。
// 同じsession_idで何度呼ばれても注文は1つ（重複配送に対して冪等）。
// 注文保存→カート整理の順を守る：保存に失敗したらカートは残る。
func (u *CheckoutUsecase) CompleteCheckout(ctx context.Context, userID int64, sessionID string) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sessionID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid session_id")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil || user == nil {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out OrderOutput

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		sess, err := r.CheckoutSessions().FindBySessionID(ctx, sessionID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人のセッションは「存在しない扱い」にする
		if sess.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		//同じセッションなら既存の注文を返す
		existing, found, err := r.Orders().FindByCheckoutSessionID(ctx, sessionID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		}

		var lines []model.CheckoutLine
		if err := json.Unmarshal([]byte(sess.Snapshot), &lines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "internal error")
		}

		//スナップショットから注文明細を作る
		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(lines))
		for _, ln := range lines {
			orderItems = append(orderItems, model.OrderItem{
				ProductID:           ln.ProductID,
				TitleSnapshot:       ln.Title,
				DescriptionSnapshot: ln.Description,
				ImageURLSnapshot:    ln.ImageURL,
				UnitPriceSnapshot:   ln.UnitPrice,
				Quantity:            ln.Quantity,
				CreatedAt:           now,
			})
		}

		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:            userID,
			Email:             user.Email,
			Total:             sess.Total,
			CheckoutSessionID: sessionID,
			CreatedAt:         now,
		})
		if err == repo.ErrDuplicate {
			//同時に同じセッションが確定した。abort済みのtxを抜けてから読み直す。
			return errOrderExists
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文が保存できてから、購入した明細だけカートから消す。
		//セッション作成後に追加された商品は未購入なのでカートに残す。
		cart, err := r.Carts().FindByUserID(ctx, userID)
		if err == nil {
			for _, ln := range lines {
				if err := r.CartItems().DeleteByCartAndProduct(ctx, cart.ID, ln.ProductID); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		} else if err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.CheckoutSessions().UpdateStatus(ctx, sessionID, model.CheckoutStatusCompleted); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		created := model.Order{
			ID:                orderID,
			UserID:            userID,
			Email:             user.Email,
			Total:             sess.Total,
			CheckoutSessionID: sessionID,
			CreatedAt:         now,
		}
		out = toOrderOutput(created, orderItems)
		return nil
	})

	if err == errOrderExists {
		//負けた側は新しいトランザクションで勝った注文を読み直して同じ結果を返す
		err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			existing, found, err := r.Orders().FindByCheckoutSessionID(ctx, sessionID)
			if err != nil || !found {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out = toOrderOutput(existing, items)
			return nil
		})
	}
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// CancelCheckout はキャンセル戻りの処理。カートはそのまま。
func (u *CheckoutUsecase) CancelCheckout(ctx context.Context, userID int64, sessionID string) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sessionID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid session_id")
	}

	sess, err := u.sessionRepo.FindBySessionID(ctx, sessionID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if sess.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "not found")
	}

	//確定済みセッションはそのまま
	if sess.Status.IsTerminal() {
		return nil
	}

	if err := u.sessionRepo.UpdateStatus(ctx, sessionID, model.CheckoutStatusFailed); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
