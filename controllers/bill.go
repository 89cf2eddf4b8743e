// controllers/bill.go
package controllers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"salonpos-backend/config"
	"salonpos-backend/models"
	"salonpos-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BillItemInput defines the structure for one line item at checkout
type BillItemInput struct {
	ServiceID int     `json:"service_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"omitempty,min=1"`
	StaffID   *int    `json:"staff_id"`
	Notes     *string `json:"notes"`
}

// CreateBillInput defines the expected JSON structure for checkout
type CreateBillInput struct {
	CustomerID     *int            `json:"customer_id"`
	Items          []BillItemInput `json:"items" binding:"required,min=1"`
	DiscountAmount float64         `json:"discount_amount" binding:"min=0"`
	DiscountType   *string         `json:"discount_type"`
	PaymentMethod  string          `json:"payment_method" binding:"required"`
	Notes          *string         `json:"notes"`
}

// BillResponse is a bill annotated with the live customer reference, used by
// the receipt view. Historical display fields live on the items themselves.
type BillResponse struct {
	models.Bill
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
}

// CreateBill writes the bill header, its denormalized line items and the
// customer visit/loyalty accrual in a single transaction; a failure at any
// step rolls the whole sale back.
func CreateBill(c *gin.Context) {
	var input CreateBillInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	tx := config.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if input.CustomerID != nil {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	var subtotal float64
	var items []models.BillItem

	for _, item := range input.Items {
		var service models.Service
		if err := tx.First(&service, "id = ?", item.ServiceID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+strconv.Itoa(item.ServiceID))
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}

		// Service name and price are copied at sale time; later catalog
		// edits must not rewrite this bill.
		billItem := models.BillItem{
			ServiceID:   service.ID,
			ServiceName: service.Name,
			Price:       service.Price,
			Quantity:    quantity,
			Notes:       item.Notes,
		}

		if item.StaffID != nil {
			var staff models.Staff
			if err := tx.First(&staff, "id = ?", *item.StaffID).Error; err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					utils.RespondWithError(c, http.StatusBadRequest, "Staff member not found: "+strconv.Itoa(*item.StaffID))
				} else {
					utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				}
				return
			}
			billItem.StaffID = &staff.ID
			name := staff.Name
			billItem.StaffName = &name
		}

		subtotal += service.Price * float64(quantity)
		items = append(items, billItem)
	}

	total := subtotal - input.DiscountAmount
	if total < 0 {
		total = 0
	}

	bill := models.Bill{
		CustomerID:     input.CustomerID,
		Subtotal:       subtotal,
		DiscountAmount: input.DiscountAmount,
		DiscountType:   input.DiscountType,
		Total:          total,
		PaymentMethod:  input.PaymentMethod,
		PaymentStatus:  "completed",
		Notes:          input.Notes,
		Items:          items,
	}

	if err := tx.Create(&bill).Error; err != nil {
		tx.Rollback()
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	if input.CustomerID != nil {
		loyaltyPoints := int(math.Floor(total / 10))
		if err := tx.Model(&models.Customer{}).Where("id = ?", *input.CustomerID).
			Updates(map[string]interface{}{
				"visits":         gorm.Expr("visits + ?", 1),
				"loyalty_points": gorm.Expr("loyalty_points + ?", loyaltyPoints),
			}).Error; err != nil {
			tx.Rollback()
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer stats")
			return
		}
	}

	tx.Commit()

	response, err := loadBill(bill.ID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load bill")
		return
	}

	utils.RespondWithData(c, http.StatusCreated, response)
}

func loadBill(id int) (*BillResponse, error) {
	var bill models.Bill
	if err := config.DB.Preload("Items").First(&bill, "id = ?", id).Error; err != nil {
		return nil, err
	}

	response := BillResponse{Bill: bill}
	if bill.CustomerID != nil {
		var customer models.Customer
		if err := config.DB.First(&customer, "id = ?", *bill.CustomerID).Error; err == nil {
			response.CustomerName = &customer.Name
			response.CustomerPhone = customer.Phone
		}
	}

	return &response, nil
}

// GetBill retrieves a bill with its items and live customer reference
func GetBill(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid bill ID")
		return
	}

	response, err := loadBill(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Bill not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	utils.RespondWithData(c, http.StatusOK, response)
}

// GetBills lists bills newest first, optionally bounded by a date range
func GetBills(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit parameter")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid offset parameter")
		return
	}

	query := config.DB.Model(&models.Bill{}).Preload("Items")

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate != "" && endDate != "" {
		query = query.Where("date(created_at) BETWEEN ? AND ?", startDate, endDate)
	}

	var bills []models.Bill
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&bills).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bills")
		return
	}

	// Annotate with live customer names in one pass.
	customerIDs := make([]int, 0, len(bills))
	for _, bill := range bills {
		if bill.CustomerID != nil {
			customerIDs = append(customerIDs, *bill.CustomerID)
		}
	}
	names := map[int]string{}
	if len(customerIDs) > 0 {
		var customers []models.Customer
		if err := config.DB.Where("id IN ?", customerIDs).Find(&customers).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
			return
		}
		for _, customer := range customers {
			names[customer.ID] = customer.Name
		}
	}

	responses := make([]BillResponse, 0, len(bills))
	for _, bill := range bills {
		response := BillResponse{Bill: bill}
		if bill.CustomerID != nil {
			if name, ok := names[*bill.CustomerID]; ok {
				n := name
				response.CustomerName = &n
			}
		}
		responses = append(responses, response)
	}

	utils.RespondWithData(c, http.StatusOK, responses)
}
