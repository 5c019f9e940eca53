package render

import (
	"encoding/json"
	"net/http"

	"ledger/handler/codes"

	"github.com/sirupsen/logrus"
	"github.com/twitchtv/twirp"
)

// H map view
type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	writeJSON(w, http.StatusOK, dataResponse{Data: v})
}

// Error write error, ledger errors carry their code as custom_code
func Error(w http.ResponseWriter, err error) {
	twerr := codes.From(err)
	writeJSON(w, twirp.ServerHTTPStatusFromErrorCode(twerr.Code()), errorResponse{
		Code: codes.Get(twerr),
		Msg:  twerr.Msg(),
	})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.InvalidArgumentError("params", err.Error()))
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, twirp.NotFoundError(err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}
