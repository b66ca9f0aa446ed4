package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/bank_backoffice_app/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice_app/internal/dto"
	"github.com/SscSPs/bank_backoffice_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to bank accounts and money movement.
type accountHandler struct {
	accountService portssvc.AccountingSvcFacade
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountingSvcFacade) {
	h := &accountHandler{accountService: accountService}

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.POST("/deposit", h.deposit)
		accounts.POST("/withdraw", h.withdraw)
		accounts.POST("/transfer", h.transfer)
		accounts.GET("/by-customer/:customerId", h.listAccountsByCustomer)
		accounts.GET("/:account", h.getAccount)
		accounts.GET("/:account/transactions", h.listTransactions)
		accounts.PATCH("/:account/status", h.changeStatus)
	}
}

// createAccount godoc
// @Summary Open a bank account
// @Description Opens an ACTIVE account with a zero balance for an existing customer.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or validation error"
// @Failure 404 {object} handlers.ErrorResponse "Customer not found"
// @Failure 500 {object} handlers.ErrorResponse "Failed to create account"
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for CreateAccount", err)
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), req.CustomerID, req.Currency)
	if err != nil {
		respondWithError(c, logger.With(slog.Int64("customer_id", req.CustomerID)), err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully",
		slog.Int64("account_id", account.AccountID),
		slog.String("account_number", account.AccountNumber))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// listAccountsByCustomer godoc
// @Summary List a customer's accounts
// @Tags accounts
// @Produce  json
// @Param   customerId path int true "Customer ID"
// @Success 200 {object} dto.ListAccountsResponse
// @Failure 400 {object} handlers.ErrorResponse "Malformed customer ID"
// @Router /accounts/by-customer/{customerId} [get]
func (h *accountHandler) listAccountsByCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	customerID, err := strconv.ParseInt(c.Param("customerId"), 10, 64)
	if err != nil {
		respondBindError(c, logger, "customer id", err)
		return
	}

	accounts, err := h.accountService.ListAccountsByCustomer(c.Request.Context(), customerID)
	if err != nil {
		respondWithError(c, logger.With(slog.Int64("customer_id", customerID)), err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)})
}

// getAccount godoc
// @Summary Get an account by number
// @Tags accounts
// @Produce  json
// @Param   account path string true "Account number"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /accounts/{account} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("account")

	account, err := h.accountService.GetAccountByNumber(c.Request.Context(), accountNumber)
	if err != nil {
		respondWithError(c, logger.With(slog.String("account_number", accountNumber)), err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deposit godoc
// @Summary Deposit money
// @Description Credits an ACTIVE account and appends a DEPOSIT ledger entry.
// @Tags money
// @Accept  json
// @Param   deposit body dto.DepositRequest true "Deposit details"
// @Success 204 "Deposit applied"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or non-positive amount"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 422 {object} handlers.ErrorResponse "Account is not active"
// @Router /accounts/deposit [post]
func (h *accountHandler) deposit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for Deposit", err)
		return
	}

	if err := h.accountService.Deposit(c.Request.Context(), req.AccountNumber, *req.Amount); err != nil {
		respondWithError(c, logger.With(slog.String("account_number", req.AccountNumber)), err, "Failed to deposit")
		return
	}

	logger.Info("Deposit applied", slog.String("account_number", req.AccountNumber), slog.String("amount", req.Amount.String()))
	c.Status(http.StatusNoContent)
}

// withdraw godoc
// @Summary Withdraw money
// @Description Debits an ACTIVE account with sufficient balance and appends a WITHDRAW ledger entry.
// @Tags money
// @Accept  json
// @Param   withdraw body dto.WithdrawRequest true "Withdrawal details"
// @Success 204 "Withdrawal applied"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format or non-positive amount"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 422 {object} handlers.ErrorResponse "Account is not active or balance is insufficient"
// @Router /accounts/withdraw [post]
func (h *accountHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for Withdraw", err)
		return
	}

	if err := h.accountService.Withdraw(c.Request.Context(), req.AccountNumber, *req.Amount); err != nil {
		respondWithError(c, logger.With(slog.String("account_number", req.AccountNumber)), err, "Failed to withdraw")
		return
	}

	logger.Info("Withdrawal applied", slog.String("account_number", req.AccountNumber), slog.String("amount", req.Amount.String()))
	c.Status(http.StatusNoContent)
}

// transfer godoc
// @Summary Transfer money between accounts
// @Description Debits the source and credits the destination in one unit of work, appending one ledger entry to each.
// @Tags money
// @Accept  json
// @Param   transfer body dto.TransferRequest true "Transfer details"
// @Success 204 "Transfer applied"
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format, non-positive amount or same account"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 422 {object} handlers.ErrorResponse "Inactive account, currency mismatch or insufficient balance"
// @Router /accounts/transfer [post]
func (h *accountHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for Transfer", err)
		return
	}

	logger = logger.With(slog.String("from_account", req.FromAccount), slog.String("to_account", req.ToAccount))
	if err := h.accountService.Transfer(c.Request.Context(), req.FromAccount, req.ToAccount, *req.Amount); err != nil {
		respondWithError(c, logger, err, "Failed to transfer")
		return
	}

	logger.Info("Transfer applied", slog.String("amount", req.Amount.String()))
	c.Status(http.StatusNoContent)
}

// listTransactions godoc
// @Summary Read an account's ledger
// @Description Returns ledger entries oldest first. Pass nextToken from a previous page to continue.
// @Tags accounts
// @Produce  json
// @Param   account path string true "Account number"
// @Param   limit query int false "Page size (1-500). Omit for the whole ledger."
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid query parameters or token"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Router /accounts/{account}/transactions [get]
func (h *accountHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountNumber := c.Param("account")

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query for ListTransactions", err)
		return
	}

	txns, nextToken, err := h.accountService.GetTransactions(c.Request.Context(), accountNumber, params.Limit, params.NextToken)
	if err != nil {
		respondWithError(c, logger.With(slog.String("account_number", accountNumber)), err, "Failed to list transactions")
		return
	}

	c.JSON(http.StatusOK, dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	})
}

// changeStatus godoc
// @Summary Change an account's status
// @Description A CLOSED account cannot be reactivated. Every other move is allowed.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Param   account path int true "Account ID"
// @Param   status body dto.ChangeStatusRequest true "Target status"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid input format"
// @Failure 404 {object} handlers.ErrorResponse "Account not found"
// @Failure 422 {object} handlers.ErrorResponse "Transition not allowed"
// @Router /accounts/{account}/status [patch]
func (h *accountHandler) changeStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var uri dto.AccountIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		respondBindError(c, logger, "account id", err)
		return
	}
	var req dto.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "JSON for ChangeStatus", err)
		return
	}

	logger = logger.With(slog.Int64("account_id", uri.AccountID), slog.String("status", string(req.Status)))
	account, err := h.accountService.ChangeStatus(c.Request.Context(), uri.AccountID, req.Status)
	if err != nil {
		respondWithError(c, logger, err, "Failed to change account status")
		return
	}

	logger.Info("Account status changed")
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}
