package i18n

var catalog = map[string]Translations{
	"en": {
		"auth.user_not_found":      "No account exists for this email.",
		"auth.invalid_credentials": "Wrong email or password.",
		"auth.email_taken":         "An account already exists for this email.",
		"auth.weak_password":       "The password must be at least 8 characters long.",
		"auth.invalid_email":       "The email address is not valid.",
		"auth.session_expired":     "Your session has expired, please sign in again.",
		"auth.unauthenticated":     "Please sign in.",
		"auth.forbidden":           "Your account is not allowed to manage content.",
		"auth.failed":              "Authentication failed, please try again.",

		"error.validation":     "A required field is missing or invalid.",
		"error.not_found":      "This record no longer exists. Reload the list.",
		"error.permission":     "Permission denied. Contact the site owner.",
		"error.transient":      "Storage is temporarily unavailable. Please retry.",
		"error.not_configured": "Storage is not configured.",
		"error.conflict":       "A save is already in progress.",
		"error.internal":       "Something went wrong.",
		"error.bad_request":    "The request body is not valid JSON.",
		"error.rate_limited":   "Too many requests. Please try again later.",

		"registration.created": "Thank you! Your registration has been received.",
	},
	"ru": {
		"auth.user_not_found":      "Аккаунт с таким email не найден.",
		"auth.invalid_credentials": "Неверный email или пароль.",
		"auth.email_taken":         "Аккаунт с таким email уже существует.",
		"auth.weak_password":       "Пароль должен содержать не менее 8 символов.",
		"auth.invalid_email":       "Некорректный адрес email.",
		"auth.session_expired":     "Сессия истекла, войдите снова.",
		"auth.unauthenticated":     "Пожалуйста, войдите.",
		"auth.forbidden":           "У вашего аккаунта нет прав на управление контентом.",
		"auth.failed":              "Ошибка входа, попробуйте ещё раз.",

		"error.validation":     "Обязательное поле не заполнено или заполнено неверно.",
		"error.not_found":      "Запись больше не существует. Обновите список.",
		"error.permission":     "Доступ запрещён. Свяжитесь с владельцем сайта.",
		"error.transient":      "Хранилище временно недоступно. Повторите попытку.",
		"error.not_configured": "Хранилище не настроено.",
		"error.conflict":       "Сохранение уже выполняется.",
		"error.internal":       "Что-то пошло не так.",
		"error.bad_request":    "Тело запроса не является корректным JSON.",
		"error.rate_limited":   "Слишком много запросов. Попробуйте позже.",

		"registration.created": "Спасибо! Ваша заявка получена.",
	},
	"fr": {
		"auth.user_not_found":      "Aucun compte n'existe pour cet email.",
		"auth.invalid_credentials": "Email ou mot de passe incorrect.",
		"auth.email_taken":         "Un compte existe déjà pour cet email.",
		"auth.weak_password":       "Le mot de passe doit contenir au moins 8 caractères.",
		"auth.invalid_email":       "L'adresse email n'est pas valide.",
		"auth.session_expired":     "Votre session a expiré, reconnectez-vous.",
		"auth.unauthenticated":     "Veuillez vous connecter.",
		"auth.forbidden":           "Votre compte n'est pas autorisé à gérer le contenu.",
		"auth.failed":              "Échec de l'authentification, réessayez.",

		"error.validation":     "Un champ obligatoire est manquant ou invalide.",
		"error.not_found":      "Cet élément n'existe plus. Rechargez la liste.",
		"error.permission":     "Accès refusé. Contactez le propriétaire du site.",
		"error.transient":      "Le stockage est momentanément indisponible. Réessayez.",
		"error.not_configured": "Le stockage n'est pas configuré.",
		"error.conflict":       "Un enregistrement est déjà en cours.",
		"error.internal":       "Une erreur est survenue.",
		"error.bad_request":    "Le corps de la requête n'est pas un JSON valide.",
		"error.rate_limited":   "Trop de requêtes. Réessayez plus tard.",

		"registration.created": "Merci ! Votre inscription a bien été reçue.",
	},
	"es": {
		"auth.user_not_found":      "No existe ninguna cuenta con este email.",
		"auth.invalid_credentials": "Email o contraseña incorrectos.",
		"auth.email_taken":         "Ya existe una cuenta con este email.",
		"auth.weak_password":       "La contraseña debe tener al menos 8 caracteres.",
		"auth.invalid_email":       "La dirección de email no es válida.",
		"auth.session_expired":     "Tu sesión ha caducado, vuelve a iniciar sesión.",
		"auth.unauthenticated":     "Inicia sesión, por favor.",
		"auth.forbidden":           "Tu cuenta no tiene permiso para gestionar el contenido.",
		"auth.failed":              "Error de autenticación, inténtalo de nuevo.",

		"error.validation":     "Falta un campo obligatorio o no es válido.",
		"error.not_found":      "Este registro ya no existe. Recarga la lista.",
		"error.permission":     "Permiso denegado. Contacta con el propietario del sitio.",
		"error.transient":      "El almacenamiento no está disponible. Inténtalo de nuevo.",
		"error.not_configured": "El almacenamiento no está configurado.",
		"error.conflict":       "Ya hay un guardado en curso.",
		"error.internal":       "Algo ha salido mal.",
		"error.bad_request":    "El cuerpo de la petición no es un JSON válido.",
		"error.rate_limited":   "Demasiadas peticiones. Inténtelo más tarde.",

		"registration.created": "¡Gracias! Hemos recibido tu inscripción.",
	},
}
