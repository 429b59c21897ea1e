package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Activity() ActivityLogRepository
	Conversations() ConversationRepository
	Earnings() EarningsRepository
	Catalog() CatalogRepository
	Reviews() ReviewRepository
}
