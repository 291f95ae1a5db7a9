package api

type loginInput struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type updateProfileInput struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=80"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
}

type createUserInput struct {
	Username    string  `json:"username" validate:"required,min=3,max=40"`
	DisplayName *string `json:"display_name" validate:"omitempty,max=80"`
	Password    string  `json:"password" validate:"required,min=8"`
	IsAdmin     bool    `json:"is_admin"`
}

type updateUserInput struct {
	DisplayName *string `json:"display_name" validate:"omitempty,max=80"`
	Password    *string `json:"password" validate:"omitempty,min=8"`
	IsAdmin     *bool   `json:"is_admin"`
	IsDisabled  *bool   `json:"is_disabled"`
}

type temperatureInput struct {
	Temperature float64 `json:"temperature" validate:"required,min=30,max=40"`
}

type periodInput struct {
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type periodPatchInput struct {
	StartDate *string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

type symptomEventInput struct {
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	FlowIntensity *string  `json:"flow_intensity" validate:"omitempty,oneof=none spotting light medium heavy"`
	Symptoms      []string `json:"symptoms" validate:"omitempty,dive,max=60"`
	Mood          []string `json:"mood" validate:"omitempty,dive,max=60"`
	Discharge     []string `json:"discharge" validate:"omitempty,dive,max=60"`
	Sex           []string `json:"sex" validate:"omitempty,dive,max=60"`
	OvulationTest *bool    `json:"ovulation_test"`
}

type symptomEventPatchInput struct {
	Date          *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	FlowIntensity *string  `json:"flow_intensity" validate:"omitempty,oneof=none spotting light medium heavy"`
	Symptoms      []string `json:"symptoms" validate:"omitempty,dive,max=60"`
	Mood          []string `json:"mood" validate:"omitempty,dive,max=60"`
	Discharge     []string `json:"discharge" validate:"omitempty,dive,max=60"`
	Sex           []string `json:"sex" validate:"omitempty,dive,max=60"`
	OvulationTest *bool    `json:"ovulation_test"`
}
