package rakuten

import (
	"encoding/json"

	"hotel_pricer/internal/domain"
)

type hotelBasicInfo struct {
	HotelNo   json.Number `json:"hotelNo"`
	HotelName string      `json:"hotelName"`
}

// HotelDetailSearch: hotels[0].hotel[0].hotelBasicInfo
type hotelEnvelope struct {
	Hotels []struct {
		Hotel []struct {
			HotelBasicInfo *hotelBasicInfo `json:"hotelBasicInfo"`
		} `json:"hotel"`
	} `json:"hotels"`
}

// roomInfoPart is one element of a roomInfo pair: the first carries the
// plan and room names, the second the charge.
type roomInfoPart struct {
	RoomBasicInfo *struct {
		PlanName string `json:"planName"`
		RoomName string `json:"roomName"`
	} `json:"roomBasicInfo"`
	DailyCharge *struct {
		Total json.Number `json:"total"`
	} `json:"dailyCharge"`
}

// VacantHotelSearch: hotels[0].hotel is a list of single-key objects, either
// hotelBasicInfo or roomInfo.
type vacantEnvelope struct {
	Hotels []struct {
		Hotel []struct {
			RoomInfo []roomInfoPart `json:"roomInfo"`
		} `json:"hotel"`
	} `json:"hotels"`
}

func (e vacantEnvelope) plans() []domain.PlanRecord {
	if len(e.Hotels) == 0 {
		return nil
	}
	var out []domain.PlanRecord
	for _, h := range e.Hotels[0].Hotel {
		if p, ok := planFromRoomInfo(h.RoomInfo); ok {
			out = append(out, p)
		}
	}
	return out
}

func planFromRoomInfo(parts []roomInfoPart) (domain.PlanRecord, bool) {
	if len(parts) < 2 || parts[0].RoomBasicInfo == nil || parts[1].DailyCharge == nil {
		return domain.PlanRecord{}, false
	}
	// fractional or out-of-range charges are not trusted
	total, err := parts[1].DailyCharge.Total.Int64()
	if err != nil || total < 0 || int64(int(total)) != total {
		return domain.PlanRecord{}, false
	}
	return domain.PlanRecord{
		PlanName:    parts[0].RoomBasicInfo.PlanName,
		RoomName:    parts[0].RoomBasicInfo.RoomName,
		TotalCharge: int(total),
	}, true
}
