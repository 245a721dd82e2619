package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestDecodeFullPayload(t *testing.T) {
	payload := []byte(`{"id":1,"operatorName":"alice","operatorId":5,"driveStatus":"ACTIVE","gpsCount":8,"lat":37.5,"lng":127.0,"timeStamp":"2024-01-01T10:00:00+09:00","speed":42.0,"heading":180.0}`)

	reading, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if reading.ID == nil || *reading.ID != 1 {
		t.Errorf("ID = %v, want 1", reading.ID)
	}
	if reading.OperatorName != "alice" {
		t.Errorf("OperatorName = %q, want alice", reading.OperatorName)
	}
	if reading.OperatorID == nil || *reading.OperatorID != 5 {
		t.Errorf("OperatorID = %v, want 5", reading.OperatorID)
	}
	if reading.DriveStatus != "ACTIVE" {
		t.Errorf("DriveStatus = %q, want ACTIVE", reading.DriveStatus)
	}
	if reading.GPSCount == nil || *reading.GPSCount != 8 {
		t.Errorf("GPSCount = %v, want 8", reading.GPSCount)
	}
	if reading.Lat == nil || *reading.Lat != 37.5 {
		t.Errorf("Lat = %v, want 37.5", reading.Lat)
	}
	if reading.Lng == nil || *reading.Lng != 127.0 {
		t.Errorf("Lng = %v, want 127.0", reading.Lng)
	}
	if reading.TimeStamp == nil || *reading.TimeStamp != "2024-01-01T10:00:00+09:00" {
		t.Errorf("TimeStamp = %v, want 2024-01-01T10:00:00+09:00", reading.TimeStamp)
	}
	if reading.Speed == nil || *reading.Speed != 42.0 {
		t.Errorf("Speed = %v, want 42.0", reading.Speed)
	}
	if reading.Heading == nil || *reading.Heading != 180.0 {
		t.Errorf("Heading = %v, want 180.0", reading.Heading)
	}
}

func TestDecodeAbsentFieldsStayNil(t *testing.T) {
	reading, err := Decode([]byte(`{"operatorName":"bob"}`))
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if reading.ID != nil {
		t.Errorf("ID = %v, want nil", reading.ID)
	}
	if reading.OperatorID != nil {
		t.Errorf("OperatorID = %v, want nil", reading.OperatorID)
	}
	if reading.GPSCount != nil {
		t.Errorf("GPSCount = %v, want nil", reading.GPSCount)
	}
	if reading.Lat != nil || reading.Lng != nil {
		t.Errorf("Lat/Lng = %v/%v, want nil/nil", reading.Lat, reading.Lng)
	}
	if reading.TimeStamp != nil {
		t.Errorf("TimeStamp = %v, want nil", reading.TimeStamp)
	}
	if reading.Speed != nil || reading.Heading != nil {
		t.Errorf("Speed/Heading = %v/%v, want nil/nil", reading.Speed, reading.Heading)
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"truncated json", `{"operatorName":"alice","operatorId":`},
		{"not json at all", `hello sensor`},
		{"type mismatch", `{"operatorId":"not-a-number"}`},
		{"null document", `null`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.payload))
			if err == nil {
				t.Fatal("Decode succeeded, want error")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("error type = %T, want *DecodeError", err)
			}
			if string(decodeErr.Payload) != tc.payload {
				t.Errorf("DecodeError.Payload = %q, want %q", decodeErr.Payload, tc.payload)
			}
		})
	}
}

func TestNormalizeTimestampNilInput(t *testing.T) {
	instant, raw := NormalizeTimestamp(nil)
	if instant != nil {
		t.Errorf("instant = %v, want nil", instant)
	}
	if raw != nil {
		t.Errorf("raw = %v, want nil", raw)
	}
}

func TestNormalizeTimestampValid(t *testing.T) {
	input := "2024-01-01T10:00:00+09:00"
	instant, raw := NormalizeTimestamp(&input)

	if raw == nil || *raw != input {
		t.Fatalf("raw = %v, want %q", raw, input)
	}
	if instant == nil {
		t.Fatal("instant is nil, want parsed value")
	}
	want, _ := time.Parse(time.RFC3339, input)
	if !instant.Equal(want) {
		t.Errorf("instant = %v, want %v", instant, want)
	}
}

func TestNormalizeTimestampUnparsableKeepsRawString(t *testing.T) {
	input := "not-a-date"
	instant, raw := NormalizeTimestamp(&input)

	if instant != nil {
		t.Errorf("instant = %v, want nil", instant)
	}
	if raw == nil || *raw != input {
		t.Errorf("raw = %v, want %q unchanged", raw, input)
	}
}
