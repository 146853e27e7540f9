package user

type CreateUserInput struct {
	Username string  `json:"username" form:"username" binding:"required,min=3,max=50" example:"dana"`
	Password string  `json:"password" form:"password" binding:"required,min=6" example:"password123"`
	Email    *string `json:"email" form:"email" binding:"omitempty,email" example:"dana@example.com"`
	FullName *string `json:"full_name" form:"full_name" binding:"omitempty,max=100" example:"Dana Cohen"`
}

type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserDTO struct {
	UID       uint    `json:"u_id" example:"1"`
	Username  string  `json:"username" example:"dana"`
	Email     *string `json:"email" example:"dana@example.com"`
	FullName  *string `json:"full_name" example:"Dana Cohen"`
	CreatedAt string  `json:"create_at" example:"2025-07-17 15:20:41"`
}

func ToDTO(u User) UserDTO {
	return UserDTO{
		UID:       u.UID,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
