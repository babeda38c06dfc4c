package dao

import "time"

// EventDao is a row of the event table.
type EventDao struct {
	Evid     int64     `gorm:"column:evid;primaryKey;autoIncrement:false" validate:"gt=0"`
	EvName   string    `gorm:"column:evname;size:32" validate:"max=32"`
	Prefor   int64     `gorm:"column:prefor" validate:"gt=0"`
	Auth     string    `gorm:"column:auth;size:15" validate:"max=15"`
	Commid   int64     `gorm:"column:commid"`
	LoadDate time.Time `gorm:"column:lddate"`
}

func (EventDao) TableName() string { return "event" }

// Validate checks the record against CSS conventions.
func (e *EventDao) Validate() error { return validate(e.TableName(), e) }

// OriginDao is a row of the origin table, one location of an event.
type OriginDao struct {
	Orid     int64     `gorm:"column:orid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Evid     int64     `gorm:"column:evid;index"`
	Lat      float64   `gorm:"column:lat" validate:"gte=-90,lte=90"`
	Lon      float64   `gorm:"column:lon" validate:"gte=-180,lte=180"`
	Depth    float64   `gorm:"column:depth"`
	Time     float64   `gorm:"column:time"`
	JDate    int       `gorm:"column:jdate"`
	Nass     int       `gorm:"column:nass"`
	Ndef     int       `gorm:"column:ndef"`
	Dtype    string    `gorm:"column:dtype;size:1" validate:"max=1"`
	Etype    string    `gorm:"column:etype;size:7" validate:"max=7"`
	Auth     string    `gorm:"column:auth;size:15" validate:"max=15"`
	LoadDate time.Time `gorm:"column:lddate"`
}

func (OriginDao) TableName() string { return "origin" }

// Validate checks the record against CSS conventions.
func (o *OriginDao) Validate() error { return validate(o.TableName(), o) }

// OrigerrDao is a row of origerr, the error estimates of an origin. The
// covariance cells follow the CSS naming of x, y, z, t axes.
type OrigerrDao struct {
	Orid   int64   `gorm:"column:orid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Sxx    float64 `gorm:"column:sxx"`
	Syy    float64 `gorm:"column:syy"`
	Szz    float64 `gorm:"column:szz"`
	Stt    float64 `gorm:"column:stt"`
	Sxy    float64 `gorm:"column:sxy"`
	Sxz    float64 `gorm:"column:sxz"`
	Syz    float64 `gorm:"column:syz"`
	Stx    float64 `gorm:"column:stx"`
	Sty    float64 `gorm:"column:sty"`
	Stz    float64 `gorm:"column:stz"`
	Sdobs  float64 `gorm:"column:sdobs" validate:"css_na_or_nonneg"`
	Smajax float64 `gorm:"column:smajax" validate:"css_na_or_nonneg"`
	Sminax float64 `gorm:"column:sminax" validate:"css_na_or_nonneg"`
	Strike float64 `gorm:"column:strike" validate:"css_azimuth"`
	Sdepth float64 `gorm:"column:sdepth" validate:"css_na_or_nonneg"`
	Stime  float64 `gorm:"column:stime" validate:"css_na_or_nonneg"`
	// Conf is the confidence level of smajax, sminax, sdepth and stime.
	Conf     float64   `gorm:"column:conf" validate:"gte=0.5,lte=1"`
	Commid   int64     `gorm:"column:commid"`
	LoadDate time.Time `gorm:"column:lddate"`
}

func (OrigerrDao) TableName() string { return "origerr" }

// Validate checks the record against CSS conventions.
func (o *OrigerrDao) Validate() error { return validate(o.TableName(), o) }

// EventControlDao is a row of evtcontrol. Its factors convert confidence
// regions to coverage ones.
type EventControlDao struct {
	Orid      int64  `gorm:"column:orid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Evid      int64  `gorm:"column:evid"`
	PreferLoc string `gorm:"column:prefer_loc;size:1" validate:"max=1"`
	// CovSmAxes converts semi-axis lengths.
	CovSmAxes float64 `gorm:"column:cov_sm_axes" validate:"css_cov"`
	// CovDepthTime converts depth and time uncertainties.
	CovDepthTime float64   `gorm:"column:cov_depth_time" validate:"css_cov"`
	LoadDate     time.Time `gorm:"column:lddate"`
}

func (EventControlDao) TableName() string { return "evtcontrol" }

// Validate checks the record against CSS conventions.
func (e *EventControlDao) Validate() error { return validate(e.TableName(), e) }
