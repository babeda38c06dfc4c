package dao

import "time"

// NetMagDao is a row of netmag, a network magnitude of an origin.
type NetMagDao struct {
	Magid       int64     `gorm:"column:magid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Net         string    `gorm:"column:net;size:8" validate:"max=8"`
	Orid        int64     `gorm:"column:orid;index" validate:"gt=0"`
	Evid        int64     `gorm:"column:evid"`
	MagType     string    `gorm:"column:magtype;size:6" validate:"required,max=6"`
	Nsta        int       `gorm:"column:nsta"`
	Magnitude   float64   `gorm:"column:magnitude" validate:"css_mag"`
	Uncertainty float64   `gorm:"column:uncertainty" validate:"css_na_or_nonneg"`
	Auth        string    `gorm:"column:auth;size:15" validate:"max=15"`
	Commid      int64     `gorm:"column:commid"`
	LoadDate    time.Time `gorm:"column:lddate"`
}

func (NetMagDao) TableName() string { return "netmag" }

// Validate checks the record against CSS conventions.
func (n *NetMagDao) Validate() error { return validate(n.TableName(), n) }

// StaMagDao is a row of stamag, a station magnitude that contributes to
// a network magnitude.
type StaMagDao struct {
	Magid       int64        `gorm:"column:magid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Ampid       int64        `gorm:"column:ampid"`
	Station     string       `gorm:"column:sta;primaryKey;size:6" validate:"required,max=6"`
	Arid        int64        `gorm:"column:arid;primaryKey;autoIncrement:false"`
	Orid        int64        `gorm:"column:orid;index" validate:"gt=0"`
	Evid        int64        `gorm:"column:evid"`
	Phase       string       `gorm:"column:phase;size:8" validate:"max=8"`
	Delta       float64      `gorm:"column:delta" validate:"css_na_or_nonneg"`
	MagType     string       `gorm:"column:magtype;size:6" validate:"max=6"`
	Magnitude   float64      `gorm:"column:magnitude" validate:"css_mag"`
	Uncertainty float64      `gorm:"column:uncertainty" validate:"css_na_or_nonneg"`
	MagRes      float64      `gorm:"column:magres"`
	MagDefining DefiningFlag `gorm:"column:magdef;size:1" validate:"css_defining"`
	MagModel    string       `gorm:"column:mmodel;size:15" validate:"max=15"`
	Auth        string       `gorm:"column:auth;size:15" validate:"max=15"`
	Commid      int64        `gorm:"column:commid"`
	LoadDate    time.Time    `gorm:"column:lddate"`
}

func (StaMagDao) TableName() string { return "stamag" }

// Validate checks the record against CSS conventions.
func (s *StaMagDao) Validate() error { return validate(s.TableName(), s) }
