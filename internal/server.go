package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/julienschmidt/httprouter"
	"ipay/config"
	"ipay/services"
)

const (
	checkout      = "/checkout"
	paymentNotify = "/notify"
	metrics       = "/metrics"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	cashier    services.Cashier
	logger     services.LogHandler
	validate   *validator.Validate
}

func NewServer(conf *config.Config) *Server {

	server := Server{
		conf:     conf,
		validate: validator.New(),
	}

	// register itself as a router for httpServer handler
	router := httprouter.New()
	server.Register(router)
	server.httpServer = &http.Server{
		Handler: router,
	}

	return &server
}

func (s *Server) Register(router *httprouter.Router) {
	router.POST(checkout, s.checkout)
	router.GET(paymentNotify, s.paymentNotify)
	router.POST(paymentNotify, s.paymentNotify)
	router.Handler(http.MethodGet, metrics, metricsHandler())
}

func (s *Server) SetCashierService(cashier services.Cashier) {
	s.cashier = cashier
}

func (s *Server) SetLogger(logger services.LogHandler) {
	s.logger = logger
}

func (s *Server) Start() error {
	if s.conf == nil {
		return fmt.Errorf("configuration not loaded")
	}

	serverAddress := fmt.Sprintf("%s:%s", s.conf.Listen.BindIP, s.conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	if s.conf.Listen.TLS {
		s.logger.Info(fmt.Sprintf("starting https TLS on %s", serverAddress))
		err = s.httpServer.ServeTLS(listener, s.conf.Listen.CertFile, s.conf.Listen.KeyFile)
	} else {
		s.logger.Info(fmt.Sprintf("starting http on %s", serverAddress))
		err = s.httpServer.Serve(listener)
	}

	return err
}

func (s *Server) checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] checkout: read request body", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var order services.Checkout
	if err = json.Unmarshal(body, &order); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] checkout: decode request body: %v", reqID, err))
		s.writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if err = s.validate.Struct(&order); err != nil {
		s.logger.Warn(fmt.Sprintf("[%s] checkout: %v", reqID, err))
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.logger.Info(fmt.Sprintf("[%s] processing request: checkout order %s, amount %v", reqID, order.OrderId, order.Amount))
	response, err := s.cashier.Checkout(ctx, &order)
	if err != nil {
		s.logger.Error(fmt.Sprintf("[%s] checkout order %s", reqID, order.OrderId), err)
		status := http.StatusBadGateway
		if IsValidation(err) || errors.Is(err, ErrCashierUsed) {
			status = http.StatusBadRequest
		}
		s.writeError(w, status, err.Error())
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(response))
}

func (s *Server) paymentNotify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := WithRequestID(r.Context())
	reqID := GetRequestID(ctx)

	if err := r.ParseForm(); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: parse form", reqID), err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	params := make(map[string]string, len(r.Form))
	for key := range r.Form {
		params[key] = r.Form.Get(key)
	}
	orderId := params["id"]
	if orderId == "" {
		orderId = params["oid"]
	}

	if err := s.cashier.Notify(ctx, orderId, params, r.RemoteAddr); err != nil {
		s.logger.Error(fmt.Sprintf("[%s] payment notify: order %s", reqID, orderId), err)
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
