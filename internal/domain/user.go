package domain

// User учетная запись клиента (только чтение, регистрация вне сервиса)
type User struct {
	ID           string // UUID
	FirstName    string
	LastName     string
	Phone        int64
	Email        string
	Username     string
	PasswordHash string
}

// UserContact контакты владельца заявки, которые администратор получает при отмене
type UserContact struct {
	UserID    string
	FirstName string
	LastName  string
	Email     string
	Phone     int64
}

// Contact возвращает контактные данные пользователя
func (u *User) Contact() UserContact {
	return UserContact{
		UserID:    u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
	}
}
