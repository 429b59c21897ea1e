package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/zervix/marketplace/internal/domain/errors"
	"github.com/zervix/marketplace/internal/domain/model"
	"github.com/zervix/marketplace/internal/domain/repository"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// dbPool is the subset of pgxpool.Pool the storage uses. Tests substitute a
// pgxmock pool through the same interface.
type dbPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   dbPool
	logger *slog.Logger
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (dbPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type activityRepository struct {
	storage *Storage
}

type conversationRepository struct {
	storage *Storage
}

type earningsRepository struct {
	storage *Storage
}

type catalogRepository struct {
	storage *Storage
}

type reviewRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Activity() repository.ActivityLogRepository {
	return &activityRepository{storage: s}
}

func (s *Storage) Conversations() repository.ConversationRepository {
	return &conversationRepository{storage: s}
}

func (s *Storage) Earnings() repository.EarningsRepository {
	return &earningsRepository{storage: s}
}

func (s *Storage) Catalog() repository.CatalogRepository {
	return &catalogRepository{storage: s}
}

func (s *Storage) Reviews() repository.ReviewRepository {
	return &reviewRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            display_name TEXT NOT NULL DEFAULT '',
            is_seller BOOLEAN NOT NULL DEFAULT FALSE,
            seller_level TEXT NOT NULL DEFAULT 'NEW',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS gigs (
            id SERIAL PRIMARY KEY,
            seller_id BIGINT NOT NULL REFERENCES users(id),
            title TEXT NOT NULL,
            category TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS gig_tiers (
            id SERIAL PRIMARY KEY,
            gig_id BIGINT NOT NULL REFERENCES gigs(id),
            name TEXT NOT NULL,
            price_cents BIGINT NOT NULL,
            delivery_days INT NOT NULL DEFAULT 0,
            revisions INT NOT NULL DEFAULT 0,
            UNIQUE (gig_id, name)
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            seller_id BIGINT NOT NULL REFERENCES users(id),
            gig_id BIGINT NOT NULL REFERENCES gigs(id),
            tier_name TEXT NOT NULL,
            status TEXT NOT NULL,
            total_cents BIGINT NOT NULL,
            requirements TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            completed_at TIMESTAMPTZ
        )`,
		`CREATE TABLE IF NOT EXISTS deliveries (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            files TEXT[] NOT NULL DEFAULT '{}',
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS revisions (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            request TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS activity_log (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            type TEXT NOT NULL,
            message TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS conversations (
            id SERIAL PRIMARY KEY,
            user_a BIGINT NOT NULL REFERENCES users(id),
            user_b BIGINT NOT NULL REFERENCES users(id),
            last_message TEXT NOT NULL DEFAULT '',
            last_message_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CHECK (user_a < user_b),
            UNIQUE (user_a, user_b)
        )`,
		`CREATE TABLE IF NOT EXISTS messages (
            id SERIAL PRIMARY KEY,
            conversation_id BIGINT NOT NULL REFERENCES conversations(id),
            sender_id BIGINT NOT NULL REFERENCES users(id),
            kind TEXT NOT NULL DEFAULT 'PLAIN',
            content TEXT NOT NULL,
            offer_price_cents BIGINT,
            offer_delivery_days INT,
            offer_note TEXT,
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id SERIAL PRIMARY KEY,
            gig_id BIGINT NOT NULL REFERENCES gigs(id),
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            rating INT NOT NULL,
            communication INT NOT NULL,
            service INT NOT NULL,
            recommend INT NOT NULL,
            comment TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            amount_cents BIGINT NOT NULL,
            processed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_seller ON orders(seller_id, status)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_order ON activity_log(order_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_user ON withdrawals(user_id, processed_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash, displayName string, isSeller bool) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, display_name, is_seller)
                   VALUES ($1, $2, $3, $4) RETURNING id, seller_level, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, displayName, isSeller).Scan(&u.ID, &u.SellerLevel, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.DisplayName = displayName
	u.IsSeller = isSeller
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, display_name, is_seller, seller_level, created_at
                   FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, display_name, is_seller, seller_level, created_at
                   FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.DisplayName, &u.IsSeller, &u.SellerLevel, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) SellerStats(ctx context.Context, sellerID int64) (*model.SellerStats, error) {
	const query = `SELECT
                       u.created_at,
                       (SELECT COUNT(*) FROM orders o WHERE o.seller_id=u.id AND o.status='COMPLETED'),
                       (SELECT COUNT(*) FROM reviews r JOIN gigs g ON r.gig_id=g.id WHERE g.seller_id=u.id),
                       (SELECT COALESCE(AVG(r.rating), 0) FROM reviews r JOIN gigs g ON r.gig_id=g.id WHERE g.seller_id=u.id)
                   FROM users u WHERE u.id=$1`
	var stats model.SellerStats
	err := r.storage.pool.QueryRow(ctx, query, sellerID).Scan(&stats.MemberSince, &stats.CompletedOrders, &stats.ReviewCount, &stats.AverageRating)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &stats, nil
}

func (r *userRepository) SetSellerLevel(ctx context.Context, sellerID int64, level model.SellerLevel) error {
	const query = `UPDATE users SET seller_level=$2 WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, sellerID, level)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *userRepository) ListSellers(ctx context.Context, limit int) ([]model.User, error) {
	const query = `SELECT id, login, password_hash, display_name, is_seller, seller_level, created_at
                   FROM users WHERE is_seller ORDER BY id LIMIT $1`
	rows, err := r.storage.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.DisplayName, &u.IsSeller, &u.SellerLevel, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order repository.NewOrder) (*model.Order, error) {
	var created model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (buyer_id, seller_id, gig_id, tier_name, status, total_cents, requirements)
                             VALUES ($1, $2, $3, $4, $5, $6, $7)
                             RETURNING id, created_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.BuyerID, order.SellerID, order.GigID, order.TierName,
			model.OrderStatusPending, order.TotalCents, order.Requirements,
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const insertActivity = `INSERT INTO activity_log (order_id, type, message) VALUES ($1, $2, $3)`
		_, err = tx.Exec(ctx, insertActivity, created.ID, model.ActivityOrderCreated, "Order placed")
		return err
	})
	if err != nil {
		return nil, err
	}

	created.BuyerID = order.BuyerID
	created.SellerID = order.SellerID
	created.GigID = order.GigID
	created.TierName = order.TierName
	created.Status = model.OrderStatusPending
	created.TotalCents = order.TotalCents
	created.Requirements = order.Requirements
	return &created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, orderID int64) (*model.Order, error) {
	const query = `SELECT id, buyer_id, seller_id, gig_id, tier_name, status, total_cents, requirements, created_at, completed_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, orderID).Scan(
		&o.ID, &o.BuyerID, &o.SellerID, &o.GigID, &o.TierName,
		&o.Status, &o.TotalCents, &o.Requirements, &o.CreatedAt, &o.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	const query = `SELECT id, buyer_id, seller_id, gig_id, tier_name, status, total_cents, requirements, created_at, completed_at
                   FROM orders WHERE buyer_id=$1 OR seller_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.SellerID, &o.GigID, &o.TierName, &o.Status, &o.TotalCents, &o.Requirements, &o.CreatedAt, &o.CompletedAt); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Transition compare-and-sets the order status and appends the STATUS_CHANGE
// ledger entry in the same transaction. A miss against the expected status
// means a concurrent writer won; readers never observe one half of the pair.
func (r *orderRepository) Transition(ctx context.Context, orderID int64, from, to model.OrderStatus) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := transitionTx(ctx, tx, orderID, from, to); err != nil {
			return err
		}
		return appendStatusChangeTx(ctx, tx, orderID, to)
	})
}

func transitionTx(ctx context.Context, tx pgx.Tx, orderID int64, from, to model.OrderStatus) error {
	const update = `UPDATE orders
                    SET status=$3,
                        completed_at = CASE WHEN $3 = 'COMPLETED' THEN NOW() ELSE completed_at END
                    WHERE id=$1 AND status=$2`
	tag, err := tx.Exec(ctx, update, orderID, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id=$1)`, orderID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return domainErrors.ErrNotFound
		}
		return domainErrors.ErrConflict
	}
	return nil
}

func appendStatusChangeTx(ctx context.Context, tx pgx.Tx, orderID int64, to model.OrderStatus) error {
	const insert = `INSERT INTO activity_log (order_id, type, message) VALUES ($1, $2, $3)`
	_, err := tx.Exec(ctx, insert, orderID, model.ActivityStatusChange, fmt.Sprintf("Order status updated to %s", to))
	return err
}

func (r *orderRepository) SubmitDelivery(ctx context.Context, orderID int64, from model.OrderStatus, files []string, note string) (*model.Delivery, error) {
	var delivery model.Delivery
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := transitionTx(ctx, tx, orderID, from, model.OrderStatusDelivered); err != nil {
			return err
		}

		const insertDelivery = `INSERT INTO deliveries (order_id, files, note) VALUES ($1, $2, $3)
                                RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertDelivery, orderID, files, note).Scan(&delivery.ID, &delivery.CreatedAt); err != nil {
			return err
		}

		const insertActivity = `INSERT INTO activity_log (order_id, type, message) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertActivity, orderID, model.ActivityDeliverySubmitted, "Seller submitted a delivery"); err != nil {
			return err
		}

		return appendStatusChangeTx(ctx, tx, orderID, model.OrderStatusDelivered)
	})
	if err != nil {
		return nil, err
	}

	delivery.OrderID = orderID
	delivery.Files = files
	delivery.Note = note
	return &delivery, nil
}

func (r *orderRepository) RequestRevision(ctx context.Context, orderID int64, request string) (*model.Revision, error) {
	var revision model.Revision
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := transitionTx(ctx, tx, orderID, model.OrderStatusDelivered, model.OrderStatusRevision); err != nil {
			return err
		}

		const insertRevision = `INSERT INTO revisions (order_id, request) VALUES ($1, $2)
                                RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertRevision, orderID, request).Scan(&revision.ID, &revision.CreatedAt); err != nil {
			return err
		}

		const insertActivity = `INSERT INTO activity_log (order_id, type, message) VALUES ($1, $2, $3)`
		if _, err := tx.Exec(ctx, insertActivity, orderID, model.ActivityRevisionRequested, "Buyer requested a revision"); err != nil {
			return err
		}

		return appendStatusChangeTx(ctx, tx, orderID, model.OrderStatusRevision)
	})
	if err != nil {
		return nil, err
	}

	revision.OrderID = orderID
	revision.Request = request
	return &revision, nil
}

func (r *orderRepository) ListDeliveries(ctx context.Context, orderID int64) ([]model.Delivery, error) {
	const query = `SELECT id, order_id, files, note, created_at
                   FROM deliveries WHERE order_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Delivery
	for rows.Next() {
		var d model.Delivery
		if err := rows.Scan(&d.ID, &d.OrderID, &d.Files, &d.Note, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) ListRevisions(ctx context.Context, orderID int64) ([]model.Revision, error) {
	const query = `SELECT id, order_id, request, created_at
                   FROM revisions WHERE order_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Revision
	for rows.Next() {
		var rev model.Revision
		if err := rows.Scan(&rev.ID, &rev.OrderID, &rev.Request, &rev.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ActivityLogRepository implementation ---

func (r *activityRepository) Append(ctx context.Context, orderID int64, entryType model.ActivityType, message string) (*model.ActivityLogEntry, error) {
	const query = `INSERT INTO activity_log (order_id, type, message) VALUES ($1, $2, $3)
                   RETURNING id, created_at`
	entry := model.ActivityLogEntry{OrderID: orderID, Type: entryType, Message: message}
	err := r.storage.pool.QueryRow(ctx, query, orderID, entryType, message).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (r *activityRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.ActivityLogEntry, error) {
	const query = `SELECT id, order_id, type, message, created_at
                   FROM activity_log WHERE order_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ActivityLogEntry
	for rows.Next() {
		var e model.ActivityLogEntry
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Type, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ConversationRepository implementation ---

func (r *conversationRepository) GetOrCreate(ctx context.Context, userA, userB int64) (*model.Conversation, error) {
	a, b := model.NormalizePair(userA, userB)

	const insert = `INSERT INTO conversations (user_a, user_b) VALUES ($1, $2)
                    ON CONFLICT (user_a, user_b) DO NOTHING
                    RETURNING id, last_message, last_message_at, created_at`
	var c model.Conversation
	err := r.storage.pool.QueryRow(ctx, insert, a, b).Scan(&c.ID, &c.LastMessage, &c.LastMessageAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.getByPair(ctx, a, b)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	c.UserA = a
	c.UserB = b
	return &c, nil
}

func (r *conversationRepository) getByPair(ctx context.Context, a, b int64) (*model.Conversation, error) {
	const query = `SELECT id, user_a, user_b, last_message, last_message_at, created_at
                   FROM conversations WHERE user_a=$1 AND user_b=$2`
	return scanConversation(r.storage.pool.QueryRow(ctx, query, a, b))
}

func (r *conversationRepository) GetByID(ctx context.Context, conversationID int64) (*model.Conversation, error) {
	const query = `SELECT id, user_a, user_b, last_message, last_message_at, created_at
                   FROM conversations WHERE id=$1`
	return scanConversation(r.storage.pool.QueryRow(ctx, query, conversationID))
}

func scanConversation(row pgx.Row) (*model.Conversation, error) {
	var c model.Conversation
	err := row.Scan(&c.ID, &c.UserA, &c.UserB, &c.LastMessage, &c.LastMessageAt, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID int64) ([]model.ConversationSummary, error) {
	const query = `SELECT c.id, c.user_a, c.user_b, c.last_message, c.last_message_at, c.created_at,
                          (SELECT COUNT(*) FROM messages m
                           WHERE m.conversation_id=c.id AND m.sender_id<>$1 AND NOT m.is_read)
                   FROM conversations c
                   WHERE c.user_a=$1 OR c.user_b=$1
                   ORDER BY c.last_message_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ConversationSummary
	for rows.Next() {
		var s model.ConversationSummary
		if err := rows.Scan(&s.ID, &s.UserA, &s.UserB, &s.LastMessage, &s.LastMessageAt, &s.CreatedAt, &s.UnreadCount); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Send appends the message and refreshes the conversation preview in one
// transaction, so last_message/last_message_at always mirror the newest
// message row.
func (r *conversationRepository) Send(ctx context.Context, conversationID, senderID int64, kind model.MessageKind, content string, offer *model.Offer) (*model.Message, error) {
	msg := model.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Kind:           kind,
		Content:        content,
		Offer:          offer,
	}

	var offerPrice *int64
	var offerDays *int
	var offerNote *string
	if offer != nil {
		offerPrice = &offer.PriceCents
		offerDays = &offer.DeliveryDays
		offerNote = &offer.Note
	}

	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insert = `INSERT INTO messages (conversation_id, sender_id, kind, content, offer_price_cents, offer_delivery_days, offer_note)
                        VALUES ($1, $2, $3, $4, $5, $6, $7)
                        RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insert, conversationID, senderID, kind, content, offerPrice, offerDays, offerNote).Scan(&msg.ID, &msg.CreatedAt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const updatePreview = `UPDATE conversations SET last_message=$2, last_message_at=$3 WHERE id=$1`
		_, err := tx.Exec(ctx, updatePreview, conversationID, content, msg.CreatedAt)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// FetchAndMarkRead flips unread flags for messages the reader has not sent,
// then returns the full sequence oldest-first. Calling it again without an
// intervening Send changes nothing.
func (r *conversationRepository) FetchAndMarkRead(ctx context.Context, conversationID, readerID int64) ([]model.Message, error) {
	var result []model.Message
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const markRead = `UPDATE messages SET is_read=TRUE
                          WHERE conversation_id=$1 AND sender_id<>$2 AND NOT is_read`
		if _, err := tx.Exec(ctx, markRead, conversationID, readerID); err != nil {
			return err
		}

		const query = `SELECT id, conversation_id, sender_id, kind, content, offer_price_cents, offer_delivery_days, offer_note, is_read, created_at
                       FROM messages WHERE conversation_id=$1 ORDER BY created_at, id`
		rows, err := tx.Query(ctx, query, conversationID)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			m, err := scanMessage(rows)
			if err != nil {
				return err
			}
			result = append(result, *m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func scanMessage(rows pgx.Rows) (*model.Message, error) {
	var m model.Message
	var offerPrice *int64
	var offerDays *int
	var offerNote *string
	if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Kind, &m.Content, &offerPrice, &offerDays, &offerNote, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	if offerPrice != nil {
		m.Offer = &model.Offer{PriceCents: *offerPrice}
		if offerDays != nil {
			m.Offer.DeliveryDays = *offerDays
		}
		if offerNote != nil {
			m.Offer.Note = *offerNote
		}
	}
	return &m, nil
}

func (r *conversationRepository) UnreadCount(ctx context.Context, conversationID, userID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM messages
                   WHERE conversation_id=$1 AND sender_id<>$2 AND NOT is_read`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, conversationID, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// --- EarningsRepository implementation ---

func (r *earningsRepository) GrossTotals(ctx context.Context, sellerID int64) (int64, int64, error) {
	const query = `SELECT
                       COALESCE(SUM(total_cents) FILTER (WHERE status = 'COMPLETED'), 0),
                       COALESCE(SUM(total_cents) FILTER (WHERE status IN ('ACTIVE', 'DELIVERED', 'REVISION')), 0)
                   FROM orders WHERE seller_id=$1`
	var completed, pending int64
	if err := r.storage.pool.QueryRow(ctx, query, sellerID).Scan(&completed, &pending); err != nil {
		return 0, 0, err
	}
	return completed, pending, nil
}

func (r *earningsRepository) WithdrawnTotal(ctx context.Context, sellerID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(amount_cents), 0) FROM withdrawals WHERE user_id=$1`
	var total int64
	if err := r.storage.pool.QueryRow(ctx, query, sellerID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Withdraw locks the seller row, re-derives the available amount inside the
// transaction and appends the withdrawal only when it is covered.
func (r *earningsRepository) Withdraw(ctx context.Context, sellerID, amountCents int64) (*model.Withdrawal, error) {
	w := model.Withdrawal{UserID: sellerID, AmountCents: amountCents}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const lockUser = `SELECT id FROM users WHERE id=$1 FOR UPDATE`
		var id int64
		if err := tx.QueryRow(ctx, lockUser, sellerID).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const totals = `SELECT
                            COALESCE((SELECT SUM(total_cents) FROM orders WHERE seller_id=$1 AND status='COMPLETED'), 0),
                            COALESCE((SELECT SUM(amount_cents) FROM withdrawals WHERE user_id=$1), 0)`
		var completedGross, withdrawn int64
		if err := tx.QueryRow(ctx, totals, sellerID).Scan(&completedGross, &withdrawn); err != nil {
			return err
		}

		available := model.NetAmountCents(completedGross) - withdrawn
		if available < amountCents {
			return domainErrors.ErrInsufficientFunds
		}

		const insert = `INSERT INTO withdrawals (user_id, amount_cents) VALUES ($1, $2)
                        RETURNING id, processed_at`
		return tx.QueryRow(ctx, insert, sellerID, amountCents).Scan(&w.ID, &w.ProcessedAt)
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *earningsRepository) ListWithdrawals(ctx context.Context, sellerID int64) ([]model.Withdrawal, error) {
	const query = `SELECT id, user_id, amount_cents, processed_at
                   FROM withdrawals WHERE user_id=$1 ORDER BY processed_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Withdrawal
	for rows.Next() {
		var w model.Withdrawal
		if err := rows.Scan(&w.ID, &w.UserID, &w.AmountCents, &w.ProcessedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CatalogRepository implementation ---

func (r *catalogRepository) GetGig(ctx context.Context, gigID int64) (*model.Gig, error) {
	const query = `SELECT id, seller_id, title, category, created_at FROM gigs WHERE id=$1`
	var g model.Gig
	err := r.storage.pool.QueryRow(ctx, query, gigID).Scan(&g.ID, &g.SellerID, &g.Title, &g.Category, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *catalogRepository) GetTier(ctx context.Context, gigID int64, tierName string) (*model.GigTier, error) {
	const query = `SELECT id, gig_id, name, price_cents, delivery_days, revisions
                   FROM gig_tiers WHERE gig_id=$1 AND name=$2`
	var t model.GigTier
	err := r.storage.pool.QueryRow(ctx, query, gigID, tierName).Scan(&t.ID, &t.GigID, &t.Name, &t.PriceCents, &t.DeliveryDays, &t.Revisions)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *catalogRepository) ListGigsBySeller(ctx context.Context, sellerID int64) ([]model.Gig, error) {
	const query = `SELECT id, seller_id, title, category, created_at
                   FROM gigs WHERE seller_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Gig
	for rows.Next() {
		var g model.Gig
		if err := rows.Scan(&g.ID, &g.SellerID, &g.Title, &g.Category, &g.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- ReviewRepository implementation ---

func (r *reviewRepository) Create(ctx context.Context, review model.Review) (*model.Review, error) {
	const query = `INSERT INTO reviews (gig_id, buyer_id, rating, communication, service, recommend, comment)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		review.GigID, review.BuyerID, review.Rating, review.Communication, review.Service, review.Recommend, review.Comment,
	).Scan(&review.ID, &review.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListBySeller(ctx context.Context, sellerID int64, limit int) ([]model.Review, error) {
	const query = `SELECT r.id, r.gig_id, r.buyer_id, r.rating, r.communication, r.service, r.recommend, r.comment, r.created_at
                   FROM reviews r JOIN gigs g ON r.gig_id=g.id
                   WHERE g.seller_id=$1 ORDER BY r.created_at DESC, r.id DESC LIMIT $2`
	rows, err := r.storage.pool.Query(ctx, query, sellerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.GigID, &rv.BuyerID, &rv.Rating, &rv.Communication, &rv.Service, &rv.Recommend, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
