package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"bloodportal/internal/auth"
	"bloodportal/internal/models"
	"bloodportal/internal/services"
)

func (h *PortalHandler) searchAvailability(c *gin.Context) {
	groups, err := parseBloodGroups(c.QueryArray("bloodGroup"))
	if err != nil {
		respondError(c, err)
		return
	}
	rows, err := h.directory.SearchAvailability(services.AvailabilityQuery{
		BloodGroups: groups,
		State:       strings.TrimSpace(c.Query("state")),
		City:        strings.TrimSpace(c.Query("city")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *PortalHandler) listBloodBanks(c *gin.Context) {
	banks := h.directory.ListBloodBanks(services.BankQuery{
		State: strings.TrimSpace(c.Query("state")),
		City:  strings.TrimSpace(c.Query("city")),
	})
	c.JSON(http.StatusOK, banks)
}

func (h *PortalHandler) getBloodBank(c *gin.Context) {
	id, ok := parseID(c, "blood bank")
	if !ok {
		return
	}
	bank, err := h.directory.GetBloodBank(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bank)
}

func (h *PortalHandler) listBankInventory(c *gin.Context) {
	id, ok := parseID(c, "blood bank")
	if !ok {
		return
	}
	var group models.BloodGroup
	if raw := c.Query("bloodGroup"); strings.TrimSpace(raw) != "" {
		parsed, err := parseBloodGroup(raw)
		if err != nil {
			respondError(c, err)
			return
		}
		group = parsed
	}
	rows, err := h.directory.ListBankInventory(id, group)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type createBloodBankRequest struct {
	Name      string `json:"name" binding:"required,min=3"`
	Address   string `json:"address" binding:"required,min=5"`
	City      string `json:"city" binding:"required,min=2"`
	State     string `json:"state" binding:"required,min=2"`
	Phone     string `json:"phone" binding:"required,min=10"`
	Email     string `json:"email" binding:"omitempty,email"`
	Latitude  string `json:"latitude" binding:"omitempty,latitude"`
	Longitude string `json:"longitude" binding:"omitempty,longitude"`
}

func (h *PortalHandler) createBloodBank(c *gin.Context) {
	var req createBloodBankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	bank := h.directory.CreateBloodBank(c.Request.Context(), models.NewBloodBank{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Phone:     req.Phone,
		Email:     req.Email,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	c.JSON(http.StatusCreated, bank)
}

type addInventoryRequest struct {
	BloodBankID int64             `json:"bloodBankId" binding:"required,min=1"`
	BloodGroup  models.BloodGroup `json:"bloodGroup" binding:"required,bloodgroup"`
	Component   models.Component  `json:"component" binding:"required,component"`
	Quantity    int               `json:"quantity" binding:"min=0"`
}

func (h *PortalHandler) addInventory(c *gin.Context) {
	var req addInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	inv, err := h.directory.AddInventory(c.Request.Context(), models.NewBloodInventory{
		BloodBankID: req.BloodBankID,
		BloodGroup:  req.BloodGroup,
		Component:   req.Component,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

type updateInventoryRequest struct {
	BloodBankID *int64             `json:"bloodBankId" binding:"omitempty,min=1"`
	BloodGroup  *models.BloodGroup `json:"bloodGroup" binding:"omitempty,bloodgroup"`
	Component   *models.Component  `json:"component" binding:"omitempty,component"`
	Quantity    *int               `json:"quantity" binding:"omitempty,min=0"`
}

func (h *PortalHandler) updateInventory(c *gin.Context) {
	id, ok := parseID(c, "inventory")
	if !ok {
		return
	}
	var req updateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	inv, err := h.directory.UpdateInventory(c.Request.Context(), id, models.InventoryPatch{
		BloodBankID: req.BloodBankID,
		BloodGroup:  req.BloodGroup,
		Component:   req.Component,
		Quantity:    req.Quantity,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

func (h *PortalHandler) listDonationCamps(c *gin.Context) {
	camps, err := h.directory.ListDonationCamps(services.CampQuery{
		Status: models.CampStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		State:  strings.TrimSpace(c.Query("state")),
		City:   strings.TrimSpace(c.Query("city")),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, camps)
}

func (h *PortalHandler) getDonationCamp(c *gin.Context) {
	id, ok := parseID(c, "donation camp")
	if !ok {
		return
	}
	camp, err := h.directory.GetDonationCamp(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

// registerCampRequest has no status field: new camps always start pending.
type registerCampRequest struct {
	Name          string `json:"name" binding:"required,min=3"`
	Organizer     string `json:"organizer" binding:"required,min=3"`
	Address       string `json:"address" binding:"required,min=5"`
	City          string `json:"city" binding:"required,min=2"`
	State         string `json:"state" binding:"required,min=2"`
	Date          string `json:"date" binding:"required,isodate"`
	StartTime     string `json:"startTime" binding:"required,hhmm"`
	EndTime       string `json:"endTime" binding:"required,hhmm"`
	ContactPerson string `json:"contactPerson" binding:"required,min=3"`
	ContactPhone  string `json:"contactPhone" binding:"required,min=10"`
	ContactEmail  string `json:"contactEmail" binding:"omitempty,email"`
}

func (h *PortalHandler) registerDonationCamp(c *gin.Context) {
	var req registerCampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	if err := validateSchedule(req.Date, req.StartTime, req.EndTime, h.nowFn(), h.location); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	camp := h.directory.RegisterDonationCamp(c.Request.Context(), models.NewDonationCamp{
		Name:          req.Name,
		Organizer:     req.Organizer,
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		Date:          req.Date,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		ContactPerson: req.ContactPerson,
		ContactPhone:  req.ContactPhone,
		ContactEmail:  req.ContactEmail,
	})
	c.JSON(http.StatusCreated, camp)
}

type campStatusRequest struct {
	Status models.CampStatus `json:"status" binding:"required,campstatus"`
}

func (h *PortalHandler) setCampStatus(c *gin.Context) {
	id, ok := parseID(c, "donation camp")
	if !ok {
		return
	}
	var req campStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	camp, err := h.directory.SetCampStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, camp)
}

type recordDonationRequest struct {
	UserID       int64             `json:"userId" binding:"required,min=1"`
	BloodBankID  int64             `json:"bloodBankId" binding:"required,min=1"`
	CampID       *int64            `json:"campId" binding:"omitempty,min=1"`
	DonationDate *time.Time        `json:"donationDate"`
	BloodGroup   models.BloodGroup `json:"bloodGroup" binding:"required,bloodgroup"`
	Component    models.Component  `json:"component" binding:"required,component"`
	Quantity     int               `json:"quantity" binding:"required,min=1"`
}

func (h *PortalHandler) recordDonation(c *gin.Context) {
	var req recordDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validationMessage(err)})
		return
	}
	in := models.NewDonation{
		UserID:      req.UserID,
		BloodBankID: req.BloodBankID,
		CampID:      req.CampID,
		BloodGroup:  req.BloodGroup,
		Component:   req.Component,
		Quantity:    req.Quantity,
	}
	if req.DonationDate != nil {
		in.DonationDate = req.DonationDate.UTC()
	}
	donation, err := h.directory.RecordDonation(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, donation)
}

func (h *PortalHandler) listUserDonations(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	c.JSON(http.StatusOK, h.directory.ListUserDonations(user.ID))
}

func (h *PortalHandler) statistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.directory.Statistics())
}

func (h *PortalHandler) bloodCompatibility(c *gin.Context) {
	raw := c.Query("bloodGroup")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusOK, models.CompatibilityChart())
		return
	}
	group, err := parseBloodGroup(raw)
	if err != nil {
		respondError(c, err)
		return
	}
	entry, _ := models.CompatibilityFor(group)
	c.JSON(http.StatusOK, entry)
}

func (h *PortalHandler) reference(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"bloodGroups": models.BloodGroups,
		"components":  models.Components,
		"states":      models.States,
	})
}
