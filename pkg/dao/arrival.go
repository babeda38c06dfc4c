package dao

import "time"

// ArrivalDao is a row of the arrival table, a detected signal onset.
type ArrivalDao struct {
	Arid     int64     `gorm:"column:arid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Station  string    `gorm:"column:sta;size:6;index" validate:"required,max=6"`
	Channel  string    `gorm:"column:chan;size:8" validate:"required,max=8"`
	Time     float64   `gorm:"column:time"`
	JDate    int       `gorm:"column:jdate"`
	IPhase   string    `gorm:"column:iphase;size:8" validate:"max=8"`
	DelTime  float64   `gorm:"column:deltim" validate:"css_na_or_nonneg"`
	Azimuth  float64   `gorm:"column:azimuth" validate:"css_azimuth"`
	DelAz    float64   `gorm:"column:delaz" validate:"css_na_or_nonneg"`
	Slow     float64   `gorm:"column:slow" validate:"css_na_or_nonneg"`
	DelSlow  float64   `gorm:"column:delslo" validate:"css_na_or_nonneg"`
	Ema      float64   `gorm:"column:ema" validate:"css_na_or_nonneg"`
	Rect     float64   `gorm:"column:rect" validate:"css_na_or_nonneg"`
	Amp      float64   `gorm:"column:amp" validate:"css_na_or_nonneg"`
	Per      float64   `gorm:"column:per" validate:"css_na_or_nonneg"`
	Fm       string    `gorm:"column:fm;size:2" validate:"max=2"`
	Snr      float64   `gorm:"column:snr" validate:"css_na_or_nonneg"`
	Auth     string    `gorm:"column:auth;size:15" validate:"max=15"`
	LoadDate time.Time `gorm:"column:lddate"`
}

func (ArrivalDao) TableName() string { return "arrival" }

// Validate checks the record against CSS conventions.
func (a *ArrivalDao) Validate() error { return validate(a.TableName(), a) }

// AssocDao is a row of the assoc table, which links an arrival to an
// origin.
type AssocDao struct {
	Arid          int64        `gorm:"column:arid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Orid          int64        `gorm:"column:orid;primaryKey;autoIncrement:false;index" validate:"gt=0"`
	Station       string       `gorm:"column:sta;size:6" validate:"required,max=6"`
	Phase         string       `gorm:"column:phase;size:8" validate:"max=8"`
	Belief        float64      `gorm:"column:belief" validate:"css_na_or_nonneg"`
	Delta         float64      `gorm:"column:delta" validate:"css_na_or_nonneg"`
	Seaz          float64      `gorm:"column:seaz" validate:"css_azimuth"`
	Esaz          float64      `gorm:"column:esaz" validate:"css_azimuth"`
	TimeRes       float64      `gorm:"column:timeres"`
	TimeDefining  DefiningFlag `gorm:"column:timedef;size:1" validate:"css_defining"`
	AzRes         float64      `gorm:"column:azres"`
	AzDefining    DefiningFlag `gorm:"column:azdef;size:1" validate:"css_defining"`
	SlowRes       float64      `gorm:"column:slores"`
	SlowDefining  DefiningFlag `gorm:"column:slodef;size:1" validate:"css_defining"`
	EmaRes        float64      `gorm:"column:emares"`
	Weight        float64      `gorm:"column:wgt" validate:"css_na_or_nonneg"`
	VelocityModel string       `gorm:"column:vmodel;size:15" validate:"max=15"`
	LoadDate      time.Time    `gorm:"column:lddate"`
}

func (AssocDao) TableName() string { return "assoc" }

// Validate checks the record against CSS conventions.
func (a *AssocDao) Validate() error { return validate(a.TableName(), a) }

// AmplitudeDao is a row of the amplitude table.
type AmplitudeDao struct {
	Ampid    int64     `gorm:"column:ampid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Arid     int64     `gorm:"column:arid;index" validate:"gt=0"`
	Channel  string    `gorm:"column:chan;size:8" validate:"max=8"`
	Amp      float64   `gorm:"column:amp" validate:"css_na_or_nonneg"`
	Per      float64   `gorm:"column:per" validate:"css_na_or_nonneg"`
	AmpTime  float64   `gorm:"column:amptime"`
	AmpType  string    `gorm:"column:amptype;size:8" validate:"required,max=8"`
	Units    string    `gorm:"column:units;size:15" validate:"max=15"`
	Clip     string    `gorm:"column:clip;size:1" validate:"max=1"`
	LoadDate time.Time `gorm:"column:lddate"`
}

func (AmplitudeDao) TableName() string { return "amplitude" }

// Validate checks the record against CSS conventions.
func (a *AmplitudeDao) Validate() error { return validate(a.TableName(), a) }

// ArInfoDao is a row of ar_info, the travel time, azimuth and slowness
// model details of an associated arrival.
type ArInfoDao struct {
	Orid                         int64     `gorm:"column:orid;primaryKey;autoIncrement:false" validate:"gt=0"`
	Arid                         int64     `gorm:"column:arid;primaryKey;autoIncrement:false" validate:"gt=0"`
	TimeErrorCode                int       `gorm:"column:time_error_code"`
	AzErrorCode                  int       `gorm:"column:az_error_code"`
	SlowErrorCode                int       `gorm:"column:slow_error_code"`
	CorrErrorCode                int       `gorm:"column:corr_error_code"`
	VelocityModel                string    `gorm:"column:vmodel;size:15" validate:"max=15"`
	TotalTravelTime              float64   `gorm:"column:total_travel_time"`
	BaseModelTravelTime          float64   `gorm:"column:base_model_travel_time"`
	TTElevationCorrection        float64   `gorm:"column:tt_elevation_correction"`
	TTEllipticityCorrection      float64   `gorm:"column:tt_ellipticity_correction"`
	TTStaticCorrection           float64   `gorm:"column:tt_static_correction"`
	TTSourceSpecificCorrection   float64   `gorm:"column:tt_source_specific_correction"`
	TTModelError                 float64   `gorm:"column:tt_model_error" validate:"css_na_or_nonneg"`
	TTMeasurementError           float64   `gorm:"column:tt_measurement_error" validate:"css_na_or_nonneg"`
	TTModelPlusMeasurementError  float64   `gorm:"column:tt_model_plus_measurement_error" validate:"css_na_or_nonneg"`
	AzSourceSpecificCorrection   float64   `gorm:"column:az_source_specific_correction"`
	AzModelError                 float64   `gorm:"column:az_model_error" validate:"css_na_or_nonneg"`
	AzMeasurementError           float64   `gorm:"column:az_measurement_error" validate:"css_na_or_nonneg"`
	AzModelPlusMeasurementError  float64   `gorm:"column:az_model_plus_measurement_error" validate:"css_na_or_nonneg"`
	SlowSourceSpecificCorrection float64   `gorm:"column:slow_source_specific_correction"`
	SlowModelError               float64   `gorm:"column:slow_model_error" validate:"css_na_or_nonneg"`
	SlowMeasurementError         float64   `gorm:"column:slow_measurement_error" validate:"css_na_or_nonneg"`
	SlowModelPlusMeasurementErr  float64   `gorm:"column:slow_model_plus_measurement_error" validate:"css_na_or_nonneg"`
	TimeWeight                   float64   `gorm:"column:time_weight" validate:"css_na_or_nonneg"`
	AzWeight                     float64   `gorm:"column:az_weight" validate:"css_na_or_nonneg"`
	SlowWeight                   float64   `gorm:"column:slow_weight" validate:"css_na_or_nonneg"`
	LoadDate                     time.Time `gorm:"column:lddate"`
}

func (ArInfoDao) TableName() string { return "ar_info" }

// Validate checks the record against CSS conventions.
func (a *ArInfoDao) Validate() error { return validate(a.TableName(), a) }
