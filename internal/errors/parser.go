package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs a machine-readable code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converts database and transport errors into a code and an
// Indonesian message safe to show to users. The context string hints at the
// operation ("order", "menu", "create", ...) for better wording.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Terjadi kesalahan pada server",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// Constraint violations. GORM translates driver errors to sentinels
	// (TranslateError); the string checks catch untranslated errors and
	// recover the constraint name for a more specific message.

	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) ||
		strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr)
	}

	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Data yang dimasukkan tidak valid",
		}
	}

	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return ErrorInfo{
			Code:    ValidationRequired,
			Message: "Ada data wajib yang belum diisi",
		}
	}

	if strings.Contains(errStrLower, "check constraint") {
		if strings.Contains(errStrLower, "status") {
			return ErrorInfo{
				Code:    OrderInvalidStatus,
				Message: "Status pesanan tidak valid. Status yang diizinkan hanya: pending, confirmed, ready, delivered, cancelled",
			}
		}
		return ErrorInfo{
			Code:    ValidationInvalidInput,
			Message: "Data yang dimasukkan tidak valid",
		}
	}

	// Network errors from external services
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Gagal terhubung ke layanan eksternal. Silakan coba lagi",
		}
	}

	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") || strings.Contains(errLower, "idx_users_email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Email sudah terdaftar",
		}
	}

	if strings.Contains(errLower, "order_number") {
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Nomor pesanan bentrok. Silakan coba lagi",
		}
	}

	if strings.Contains(errLower, "categories") || strings.Contains(errLower, "idx_categories_name") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Kategori dengan nama tersebut sudah ada",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Data sudah ada",
	}
}

func parseForeignKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(errLower, "categor") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Kategori masih memiliki menu dan tidak dapat dihapus",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Data masih digunakan dan tidak dapat dihapus",
		}
	}

	if strings.Contains(errLower, "menu_item_id") {
		return ErrorInfo{
			Code:    MenuItemNotFound,
			Message: "Menu tidak ditemukan",
		}
	}
	if strings.Contains(errLower, "user_id") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Pengguna tidak ditemukan",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Data yang dirujuk tidak ditemukan",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "order"), strings.Contains(contextLower, "pesanan"):
		return "Pesanan tidak ditemukan"
	case strings.Contains(contextLower, "menu"):
		return "Menu tidak ditemukan"
	case strings.Contains(contextLower, "categor"), strings.Contains(contextLower, "kategori"):
		return "Kategori tidak ditemukan"
	case strings.Contains(contextLower, "banner"):
		return "Banner tidak ditemukan"
	case strings.Contains(contextLower, "cart"), strings.Contains(contextLower, "keranjang"):
		return "Item keranjang tidak ditemukan"
	case strings.Contains(contextLower, "user"), strings.Contains(contextLower, "pengguna"):
		return "Pengguna tidak ditemukan"
	case strings.Contains(contextLower, "notification"), strings.Contains(contextLower, "notifikasi"):
		return "Notifikasi tidak ditemukan"
	}

	return "Data tidak ditemukan"
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Gagal menyimpan data. Silakan coba lagi"
	case strings.Contains(contextLower, "update"):
		return "Gagal memperbarui data. Silakan coba lagi"
	case strings.Contains(contextLower, "delete"):
		return "Gagal menghapus data. Silakan coba lagi"
	}

	return "Terjadi kesalahan pada server. Silakan coba lagi"
}
