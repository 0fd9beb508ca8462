package dto

import (
	"time"

	"taskflow/internal/taskflow/domain/entities"
	"taskflow/internal/taskflow/ports/api"
)

// UserRequest представляет тело запроса на создание или обновление
// пользователя. Пустой пароль при обновлении означает "не менять".
type UserRequest struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUserData преобразует запрос в данные для бизнес-логики.
func (r UserRequest) ToUserData() api.UserData {
	return api.UserData{
		FullName: r.FullName,
		Age:      r.Age,
		Email:    r.Email,
		Password: r.Password,
	}
}

// UserResponse представляет пользователя в ответе API.
type UserResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"fullName"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewUserResponse собирает ответ из доменной сущности.
func NewUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		FullName:  user.FullName,
		Age:       user.Age,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserResponses собирает список ответов.
func NewUserResponses(users []*entities.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}

// UserPageResponse представляет страницу пользователей.
type UserPageResponse struct {
	Content       []UserResponse `json:"content"`
	TotalElements int            `json:"totalElements"`
	TotalPages    int            `json:"totalPages"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
}

// NewUserPageResponse собирает страницу пользователей.
func NewUserPageResponse(users []*entities.User, total, page, size int) UserPageResponse {
	return UserPageResponse{
		Content:       NewUserResponses(users),
		TotalElements: total,
		TotalPages:    totalPages(total, size),
		Page:          page,
		Size:          size,
	}
}
