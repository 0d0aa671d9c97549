// Package i18n translates message keys into the language of the current
// request.
//
// Translations are nested maps keyed by language, loaded from YAML or JSON
// through a TranslationAdapter:
//
//	vi:
//	  form:
//	    student:
//	      phone:
//	        invalid: "Số điện thoại phải có 10 chữ số, bắt đầu bằng 09, 03 hoặc 08"
//
// Keys use dot notation ("form.student.phone.invalid"). Placeholders use
// %{name} and are filled from key/value argument pairs or a params map. A key
// missing in the requested language falls back to the default language and
// then to the key itself, so untranslated literals pass through unchanged.
//
// Middleware picks the request language from the "lang" query parameter, the
// "lang" cookie or Accept-Language (negotiated with golang.org/x/text/language)
// and stores it in the request context.
package i18n
