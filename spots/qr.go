package spots

import (
	"fmt"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"

	"desa/app"
	"desa/catalog"
)

// QRHandler handles /spot/qr?id= and returns a PNG QR code pointing at the
// spot's outbound map link, so a visitor can hand the location to their phone.
func QRHandler(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		app.BadRequest(w, r, "id required")
		return
	}

	spot := catalog.Get(id)
	if spot == nil {
		app.NotFound(w, r, "spot not found")
		return
	}

	link := spot.MapsURL
	if link == "" && spot.Mappable {
		link = fmt.Sprintf("https://www.openstreetmap.org/?mlat=%.6f&mlon=%.6f#map=16/%.6f/%.6f",
			spot.Lat, spot.Lon, spot.Lat, spot.Lon)
	}
	if link == "" {
		app.NotFound(w, r, "spot has no location link")
		return
	}

	png, err := qrcode.Encode(link, qrcode.Medium, 256)
	if err != nil {
		app.ServerError(w, r, "could not generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
