package errcode

// Localized user-facing messages keyed by error code. Unrecognized codes fall
// back to the generic unexpected-error message; no error is ever surfaced to
// the user as a raw internal string.

var messages = map[string]map[int]string{
	"en": {
		Validation:      "Some fields are invalid. Please review and try again.",
		NotFound:        "The requested item could not be found.",
		Conflict:        "This change conflicts with the current state.",
		RateLimit:       "Too many requests. Please wait a moment and retry.",
		Unauthenticated: "Please sign in to continue.",
		Forbidden:       "You do not have access to this item.",
		ResourceMissing: "Some referenced files were missing and were skipped.",
		SystemError:     "Something went wrong on our side. Please try again.",
	},
	"tr": {
		Validation:      "Bazı alanlar geçersiz. Lütfen kontrol edip tekrar deneyin.",
		NotFound:        "İstenen öğe bulunamadı.",
		Conflict:        "Bu değişiklik mevcut durumla çakışıyor.",
		RateLimit:       "Çok fazla istek gönderildi. Lütfen biraz bekleyip tekrar deneyin.",
		Unauthenticated: "Devam etmek için lütfen giriş yapın.",
		Forbidden:       "Bu öğeye erişiminiz yok.",
		ResourceMissing: "Bazı dosyalar eksik olduğu için atlandı.",
		SystemError:     "Bizim tarafımızda bir sorun oluştu. Lütfen tekrar deneyin.",
	},
}

var fallback = map[string]string{
	"en": "An unexpected error occurred.",
	"tr": "Beklenmeyen bir hata oluştu.",
}

// UserMessage returns the localized message for a code, falling back to the
// generic message for unrecognized codes and to English for unknown locales.
func UserMessage(locale string, code int) string {
	table, ok := messages[locale]
	if !ok {
		table = messages["en"]
	}
	if msg, ok := table[code]; ok {
		return msg
	}
	if msg, ok := fallback[locale]; ok {
		return msg
	}
	return fallback["en"]
}
