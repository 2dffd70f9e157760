package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bloodportal/internal/auth"
	"bloodportal/internal/models"
)

type registerRequest struct {
	Username   string            `json:"username" binding:"required,min=3"`
	Password   string            `json:"password" binding:"required,min=6"`
	Name       string            `json:"name" binding:"required,min=2"`
	Email      string            `json:"email" binding:"required,email"`
	Phone      string            `json:"phone" binding:"required,min=10"`
	BloodGroup models.BloodGroup `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Address    string            `json:"address"`
	City       string            `json:"city"`
	State      string            `json:"state"`
}

// register creates the donor account and logs it in, like the portal's sign-up form.
func (h *PortalHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	user, err := h.accounts.Register(c.Request.Context(), models.NewUser{
		Username:   req.Username,
		Password:   req.Password,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	h.auth.Login(c, user)
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *PortalHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	user, err := h.accounts.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	h.auth.Login(c, user)
	c.JSON(http.StatusOK, user)
}

func (h *PortalHandler) logout(c *gin.Context) {
	h.auth.Logout(c)
	c.Status(http.StatusOK)
}

func (h *PortalHandler) currentUser(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, user)
}

type updateProfileRequest struct {
	Password   *string            `json:"password" binding:"omitempty,min=6"`
	Name       *string            `json:"name" binding:"omitempty,min=2"`
	Email      *string            `json:"email" binding:"omitempty,email"`
	Phone      *string            `json:"phone" binding:"omitempty,min=10"`
	BloodGroup *models.BloodGroup `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Address    *string            `json:"address"`
	City       *string            `json:"city"`
	State      *string            `json:"state"`
}

// updateProfile changes the caller's own profile. Usernames are fixed once registered.
func (h *PortalHandler) updateProfile(c *gin.Context) {
	current, _ := auth.CurrentUser(c)
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	user, err := h.accounts.UpdateProfile(c.Request.Context(), current.ID, models.UserPatch{
		Password:   req.Password,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		BloodGroup: req.BloodGroup,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
