package models

type Country struct {
	BaseModel
	Name string `gorm:"unique;not null" json:"name"`
	Code string `gorm:"unique;size:2;not null" json:"code"`
}

type Address struct {
	BaseModel
	CustomerID          string   `gorm:"index;not null" json:"customer_id"`
	Customer            Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`
	CountryID           string   `gorm:"not null" json:"country_id"`
	Country             Country  `gorm:"foreignKey:CountryID" json:"country"`
	FirstName           string   `json:"first_name"`
	LastName            string   `json:"last_name"`
	StreetAddress       string   `json:"street_address"`
	SecondStreetAddress string   `json:"second_street_address"`
	City                string   `json:"city"`
	State               string   `json:"state"`
	ZipCode             string   `json:"zip_code"`
	PhoneNumber         string   `json:"phone_number"`
}
