package handlers

import (
	userRepoPkg "sokoni/database/repository/user"
)

// HandlerBundle groups all endpoint handlers plus the repository the auth
// middleware needs.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	Users         *UserHandler
	Sellers       *SellerHandler
	Subscriptions *SubscriptionHandler
	Withdrawals   *WithdrawalHandler
	Notifications *NotificationHandler
	Categories    *CategoryHandler
	Storage       *StorageHandler
}
