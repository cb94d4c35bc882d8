package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The frontend maps these codes to its own message catalog.

const (
	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"

	// ==================== Authorization (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND"
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID     = "VALIDATION_INVALID_ID"
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT"
	ValidationRequired      = "VALIDATION_REQUIRED"

	// ==================== Resources (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
	ResourceConflict      = "RESOURCE_CONFLICT"

	// ==================== Cart (CART_) ====================
	CartEmpty        = "CART_EMPTY"
	CartItemNotFound = "CART_ITEM_NOT_FOUND"
	CartItemInvalid  = "CART_ITEM_INVALID"

	// ==================== Orders (ORDER_) ====================
	OrderNotFound            = "ORDER_NOT_FOUND"
	OrderInvalidTotal        = "ORDER_INVALID_TOTAL"
	OrderCreateFailed        = "ORDER_CREATE_FAILED"
	OrderVerificationFailed  = "ORDER_VERIFICATION_FAILED"
	OrderInvalidStatus       = "ORDER_INVALID_STATUS"
	OrderInvalidTransition   = "ORDER_INVALID_TRANSITION"
	OrderCancelReasonMissing = "ORDER_CANCEL_REASON_MISSING"

	// ==================== Menu (MENU_) ====================
	MenuItemNotFound    = "MENU_ITEM_NOT_FOUND"
	MenuItemUnavailable = "MENU_ITEM_UNAVAILABLE"
	CategoryNotFound    = "MENU_CATEGORY_NOT_FOUND"

	// ==================== Banners (BANNER_) ====================
	BannerNotFound = "BANNER_NOT_FOUND"

	// ==================== Notifications (NOTIFICATION_) ====================
	NotificationNotFound = "NOTIFICATION_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
	InternalExternalAPI = "INTERNAL_EXTERNAL_API"
)
