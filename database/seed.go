package database

import (
	"log"
	"time"

	"gym_manager/constants"
	"gym_manager/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456qt"), 10)
	hashPassword := string(bytes)
	if err != nil {
		log.Println("failed to hash seed password:", err)
		return
	}

	admin := model.Account{
		Username: "Administration",
		Password: hashPassword,
		Active:   true,
		Role:     constants.ROLE_PLATFORM_ADMIN,
	}
	if err := db.Where(model.Account{Username: admin.Username}).FirstOrCreate(&admin).Error; err != nil {
		log.Println("failed to seed platform admin:", err)
	}

	// Tenant demo cho môi trường dev
	tenant := model.Tenant{
		Slug:   "demo-gym",
		Name:   "Demo Gym",
		Active: true,
	}
	if err := db.Where(model.Tenant{Slug: tenant.Slug}).FirstOrCreate(&tenant).Error; err != nil {
		log.Println("failed to seed demo tenant:", err)
		return
	}

	branch := model.Branch{
		TenantId: tenant.ID,
		Name:     "Chi nhánh 1",
		Address:  "1 Nguyễn Trãi, Q.1",
		Active:   true,
	}
	if err := db.Where(model.Branch{TenantId: tenant.ID, Name: branch.Name}).FirstOrCreate(&branch).Error; err != nil {
		log.Println("failed to seed demo branch:", err)
	}

	owner := model.Account{
		Username: "demo-owner",
		Password: hashPassword,
		Active:   true,
		Role:     constants.ROLE_OWNER,
		TenantId: &tenant.ID,
	}
	if err := db.Where(model.Account{Username: owner.Username}).FirstOrCreate(&owner).Error; err != nil {
		log.Println("failed to seed demo owner:", err)
	}

	pinHash, _ := bcrypt.GenerateFromPassword([]byte("0000"), 10)
	customer := model.Customer{
		TenantId: tenant.ID,
		Phone:    "0900000001",
		Name:     "Khách Demo",
		PinHash:  string(pinHash),
		IsActive: true,
	}
	if err := db.Where(model.Customer{TenantId: tenant.ID, Phone: customer.Phone}).FirstOrCreate(&customer).Error; err != nil {
		log.Println("failed to seed demo customer:", err)
	}

	ticket := model.Ticket{
		Code:          "T001",
		TenantId:      tenant.ID,
		BranchId:      branch.ID,
		OwnerPhone:    customer.Phone,
		OwnerName:     customer.Name,
		Type:          constants.TICKET_12_SESSION,
		TotalUses:     12,
		RemainingUses: 12,
		ExpiresAt:     time.Now().AddDate(0, 3, 0),
		Status:        constants.TICKET_ACTIVE,
	}
	if err := db.Where(model.Ticket{Code: ticket.Code}).FirstOrCreate(&ticket).Error; err != nil {
		log.Println("failed to seed demo ticket:", err)
	}
}
