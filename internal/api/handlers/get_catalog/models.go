package get_catalog

import "github.com/m04kA/SMC-CapacityService/internal/domain"

// CatalogResponse каталог часовых интервалов
type CatalogResponse struct {
	Version   string             `json:"version"`
	TimeSlots []TimeSlotResponse `json:"timeSlots"`
}

// TimeSlotResponse интервалы одного периода
type TimeSlotResponse struct {
	TimeSlot    string           `json:"timeSlot"`
	HourBuckets []BucketResponse `json:"hourBuckets"`
}

// BucketResponse часовой интервал
type BucketResponse struct {
	Label     string `json:"label"`
	StartHour int    `json:"startHour"`
	EndHour   int    `json:"endHour"`
}

// FromCatalog конвертирует каталог в HTTP ответ
func FromCatalog(c *domain.Catalog) CatalogResponse {
	resp := CatalogResponse{Version: c.Version()}
	for _, ts := range c.TimeSlots() {
		tsResp := TimeSlotResponse{TimeSlot: string(ts)}
		for _, b := range c.HourBuckets(ts) {
			tsResp.HourBuckets = append(tsResp.HourBuckets, BucketResponse{
				Label:     b.Label,
				StartHour: b.StartHour,
				EndHour:   b.EndHour,
			})
		}
		resp.TimeSlots = append(resp.TimeSlots, tsResp)
	}
	return resp
}
