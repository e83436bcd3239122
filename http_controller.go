package fastauth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
)

// DefaultRoutePrefix is where RegisterAuthRoutes mounts the endpoints
const DefaultRoutePrefix = "/auth"

// RegisterPayload is the registration request body
type RegisterPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r RegisterPayload) Valid() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginPayload is the login request body
type LoginPayload struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

func (r LoginPayload) Valid() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse carries the user resource plus the bearer credentials
// the client presents on subsequent requests. This is the only place
// the access token crosses the wire
type LoginResponse[T UserRecord] struct {
	User        T      `json:"user"`
	UserID      string `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// AuthController binds a Service to fiber routes
type AuthController[T UserRecord] struct {
	Prefix  string
	Logger  Logger
	service *Service[T]
}

type ControllerOption[T UserRecord] func(*AuthController[T])

// WithRoutePrefix changes the mount point of the auth endpoints
func WithRoutePrefix[T UserRecord](prefix string) ControllerOption[T] {
	return func(c *AuthController[T]) {
		c.Prefix = prefix
	}
}

// NewAuthController returns a controller for svc
func NewAuthController[T UserRecord](svc *Service[T], opts ...ControllerOption[T]) *AuthController[T] {
	controller := &AuthController[T]{
		Prefix:  DefaultRoutePrefix,
		Logger:  defLogger{},
		service: svc,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(controller)
		}
	}

	return controller
}

// RegisterAuthRoutes mounts POST <prefix>/register and
// POST <prefix>/login on app
func RegisterAuthRoutes[T UserRecord](app *fiber.App, svc *Service[T], opts ...ControllerOption[T]) *AuthController[T] {
	controller := NewAuthController(svc, opts...)

	group := app.Group(controller.Prefix)
	group.Post("/register", controller.RegistrationCreate)
	group.Post("/login", controller.LoginPost)

	return controller
}

// RegistrationCreate handles POST /auth/register. The response is the
// user resource, credentials are excluded by the model's json tags
func (a *AuthController[T]) RegistrationCreate(c *fiber.Ctx) error {
	payload := RegisterPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := payload.Valid(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := a.service.Register(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// LoginPost handles POST /auth/login
func (a *AuthController[T]) LoginPost(c *fiber.Ctx) error {
	payload := LoginPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if err := payload.Valid(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := a.service.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return a.errorResponse(c, err)
	}

	return c.JSON(LoginResponse[T]{
		User:        user,
		UserID:      user.GetID().String(),
		AccessToken: user.GetAccessToken(),
	})
}

func (a *AuthController[T]) errorResponse(c *fiber.Ctx, err error) error {
	status := StatusCode(err)
	if status == fiber.StatusInternalServerError {
		a.Logger.Error("Auth controller error: %s", err)
		// do not leak internals
		return c.Status(status).JSON(fiber.Map{"error": "internal error"})
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
