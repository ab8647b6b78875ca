package probe

import (
	"errors"
	"testing"
)

const fullJSON = `{
  "streams": [
    {"codec_name": "mjpeg", "codec_type": "video", "disposition": {"attached_pic": 1}},
    {"codec_name": "h264", "codec_type": "video", "bit_rate": "1500000", "disposition": {}},
    {"codec_name": "aac", "codec_type": "audio", "bit_rate": "128000", "disposition": {}},
    {"codec_name": "ac3", "codec_type": "audio", "bit_rate": "448000", "disposition": {}}
  ],
  "format": {"duration": "120.500000", "size": "5000000"}
}`

func TestParseJSON_FullFile(t *testing.T) {
	st, err := ParseJSON([]byte(fullJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if st.Size != 5000000 {
		t.Errorf("Size = %d, want 5000000", st.Size)
	}
	if st.Duration != 120.5 {
		t.Errorf("Duration = %v, want 120.5", st.Duration)
	}
	if st.Video == nil {
		t.Fatal("Video stream missing")
	}
	// The attached cover art must not win over the real video stream.
	if st.Video.Codec != "h264" || st.Video.BitRate != 1500000 {
		t.Errorf("Video = %+v, want h264 @ 1500000", st.Video)
	}
	if st.Audio == nil {
		t.Fatal("Audio stream missing")
	}
	// First audio stream wins.
	if st.Audio.Codec != "aac" || st.Audio.BitRate != 128000 {
		t.Errorf("Audio = %+v, want aac @ 128000", st.Audio)
	}
}

func TestParseJSON_AudioOnly(t *testing.T) {
	data := `{
      "streams": [{"codec_name": "mp3", "codec_type": "audio", "bit_rate": "192000"}],
      "format": {"duration": "30.0", "size": "720000"}
    }`
	st, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if st.Video != nil {
		t.Errorf("Video = %+v, want nil for audio-only file", st.Video)
	}
	if st.Audio == nil || st.Audio.Codec != "mp3" {
		t.Errorf("Audio = %+v, want mp3", st.Audio)
	}
}

func TestParseJSON_MissingBitrateIsZeroNotError(t *testing.T) {
	data := `{
      "streams": [
        {"codec_name": "h264", "codec_type": "video"},
        {"codec_name": "opus", "codec_type": "audio"}
      ],
      "format": {"duration": "10.0", "size": "100000"}
    }`
	st, err := ParseJSON([]byte(data))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if st.Video == nil || st.Video.BitRate != 0 {
		t.Errorf("Video = %+v, want present with zero bitrate", st.Video)
	}
	if st.Audio == nil || st.Audio.BitRate != 0 {
		t.Errorf("Audio = %+v, want present with zero bitrate", st.Audio)
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestProbeError_CarriesPathAndMessage(t *testing.T) {
	var err error = &ProbeError{Path: "input/clip.mp4", Msg: "moov atom not found"}
	var pe *ProbeError
	if !errors.As(err, &pe) {
		t.Fatal("errors.As failed")
	}
	got := err.Error()
	if got != "probe input/clip.mp4: moov atom not found" {
		t.Errorf("Error() = %q", got)
	}
}
